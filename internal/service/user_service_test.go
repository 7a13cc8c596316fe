package service

import (
	"testing"
	"time"

	"lingua_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateProfileMergesPartialFields(t *testing.T) {
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	users := NewUserService(env.state)

	user, err := users.UpdateProfile(ProfileUpdate{DisplayName: ptr("Ana")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.DisplayName)
	// 未提供的字段保持原值
	assert.Equal(t, "Player 1", user.Name)

	user, err = users.UpdateProfile(ProfileUpdate{
		Gender:      ptr("female"),
		Preferences: &model.Preferences{Track: "spoken", SubjectID: "topic1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.DisplayName)
	assert.Equal(t, "female", user.Gender)
	assert.Equal(t, "topic1", user.Preferences.SubjectID)
}

func TestStatsSubjectFallback(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	users := NewUserService(env.state)

	// 既没有指定主题也没有偏好时不带统计
	view := users.Stats("")
	assert.Nil(t, view.Progress)

	_, err := env.learning.Submit(SubmitRequest{ItemID: "topic1::t_1", Response: "a"})
	require.NoError(t, err)

	view = users.Stats("topic1")
	require.NotNil(t, view.Progress)
	assert.Equal(t, 1, view.Progress.Attempts)
	assert.Equal(t, 1, view.Progress.Correct)

	// 没指定主题时回退到档案偏好
	_, err = users.UpdateProfile(ProfileUpdate{
		Preferences: &model.Preferences{SubjectID: "topic1"},
	})
	require.NoError(t, err)
	view = users.Stats("")
	require.NotNil(t, view.Progress)
	assert.Equal(t, 1, view.Progress.Attempts)

	// 不认识的主题给零值统计而不是报错
	view = users.Stats("missing")
	require.NotNil(t, view.Progress)
	assert.Equal(t, 0, view.Progress.Attempts)
}

func TestUserReset(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	users := NewUserService(env.state)

	_, err := env.learning.Submit(SubmitRequest{ItemID: "topic1::t_1", Response: "a"})
	require.NoError(t, err)
	require.NotZero(t, users.Profile().XP)

	require.NoError(t, users.Reset())
	assert.Zero(t, users.Profile().XP)
	env.state.View(func(st *model.State) {
		assert.Empty(t, st.Srs)
		assert.Empty(t, st.Progress)
		assert.Empty(t, st.Log)
	})
}
