package guard

import (
	"testing"

	"pathfinder_gateway/internal/models"
	"pathfinder_gateway/internal/session"

	"github.com/stretchr/testify/assert"
)

func userSession() session.Session {
	return session.Session{
		User:  &session.Identity{ID: "42", Email: "model@test.com", Role: models.UserRoleUser},
		Token: "token",
	}
}

func recruiterSession() session.Session {
	return session.Session{
		User:  &session.Identity{ID: "7", Email: "hr@test.com", Role: models.UserRoleRecruiter},
		Token: "token",
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		sess     session.Session
		required models.UserRole
		want     Decision
	}{
		{
			name:     "аноним на маршруте соискателя",
			sess:     session.Session{},
			required: models.UserRoleUser,
			want:     Decision{Redirect: LoginPath},
		},
		{
			name:     "аноним на маршруте рекрутера",
			sess:     session.Session{},
			required: models.UserRoleRecruiter,
			want:     Decision{Redirect: LoginPath},
		},
		{
			name:     "соискатель на своем маршруте",
			sess:     userSession(),
			required: models.UserRoleUser,
			want:     Decision{Allow: true},
		},
		{
			name:     "рекрутер на своем маршруте",
			sess:     recruiterSession(),
			required: models.UserRoleRecruiter,
			want:     Decision{Allow: true},
		},
		{
			// Чужая роль уводится на СВОЙ дашборд, не на /login
			name:     "соискатель на маршруте рекрутера",
			sess:     userSession(),
			required: models.UserRoleRecruiter,
			want:     Decision{Redirect: "/dashboard"},
		},
		{
			name:     "рекрутер на маршруте соискателя",
			sess:     recruiterSession(),
			required: models.UserRoleUser,
			want:     Decision{Redirect: "/recruiter/dashboard"},
		},
		{
			// Токен без идентичности - не аутентификация
			name:     "токен без пользователя",
			sess:     session.Session{Token: "token"},
			required: models.UserRoleUser,
			want:     Decision{Redirect: LoginPath},
		},
		{
			name:     "пользователь без токена",
			sess:     session.Session{User: &session.Identity{ID: "42", Email: "a@b.c", Role: models.UserRoleUser}},
			required: models.UserRoleUser,
			want:     Decision{Redirect: LoginPath},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Decide(tc.sess, tc.required)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecide_Deterministic(t *testing.T) {
	t.Parallel()

	// Одинаковый вход - одинаковое решение, сколько ни вызывай
	sess := recruiterSession()
	first := Decide(sess, models.UserRoleUser)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Decide(sess, models.UserRoleUser))
	}
}

func TestDecideHome(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		sess session.Session
		want Decision
	}{
		{"аноним видит лендинг", session.Session{}, Decision{Allow: true}},
		{"соискатель уезжает на свой дашборд", userSession(), Decision{Redirect: "/dashboard"}},
		{"рекрутер уезжает на свой дашборд", recruiterSession(), Decision{Redirect: "/recruiter/dashboard"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, DecideHome(tc.sess))
		})
	}
}
