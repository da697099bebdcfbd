package services

import (
	"testing"

	"github.com/gitaura/gitaura/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileLazyDefault(t *testing.T) {
	env := newTestEnv()

	profile, err := env.profileService.GetProfile()
	require.NoError(t, err)

	assert.Equal(t, models.DefaultUsername, profile.Username)
	assert.Equal(t, 0, profile.TotalAnalyses)
	assert.Equal(t, 0, profile.TotalScore)
	assert.Equal(t, 0, profile.AverageScore)
	assert.Empty(t, profile.FavoriteRepos)
	assert.Empty(t, profile.Achievements)
	assert.NotZero(t, profile.JoinDate)

	// Repeated reads with no mutation return the same profile
	again, err := env.profileService.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, profile, again)
}

func TestUpdateProfileShallowMerge(t *testing.T) {
	env := newTestEnv()

	_, _, err := env.saveWithScore(0, 80)
	require.NoError(t, err)

	username := "aura-hunter"
	updated, err := env.profileService.UpdateProfile(&models.ProfileUpdate{
		Username: &username,
	})
	require.NoError(t, err)

	assert.Equal(t, "aura-hunter", updated.Username)
	assert.Equal(t, 1, updated.TotalAnalyses, "fields absent from the update are preserved")
	assert.Equal(t, 80, updated.TotalScore)
}

func TestUpdateProfileTouchesLastActive(t *testing.T) {
	env := newTestEnv()

	profile, err := env.profileService.GetProfile()
	require.NoError(t, err)
	joinDate := profile.JoinDate

	username := "someone"
	updated, err := env.profileService.UpdateProfile(&models.ProfileUpdate{
		Username: &username,
	})
	require.NoError(t, err)

	assert.Equal(t, joinDate, updated.JoinDate, "joinDate is immutable")
	assert.GreaterOrEqual(t, updated.LastActive, joinDate)
}

func TestToggleFavorite(t *testing.T) {
	env := newTestEnv()

	isFavorite, err := env.profileService.ToggleFavorite("octocat", "hello-world")
	require.NoError(t, err)
	assert.True(t, isFavorite)

	check, err := env.profileService.IsFavorite("octocat", "hello-world")
	require.NoError(t, err)
	assert.True(t, check)

	// Toggling twice returns to the original membership state
	isFavorite, err = env.profileService.ToggleFavorite("octocat", "hello-world")
	require.NoError(t, err)
	assert.False(t, isFavorite)

	check, err = env.profileService.IsFavorite("octocat", "hello-world")
	require.NoError(t, err)
	assert.False(t, check)

	profile, err := env.profileService.GetProfile()
	require.NoError(t, err)
	assert.Empty(t, profile.FavoriteRepos)
}

func TestToggleFavoriteKeepsOthers(t *testing.T) {
	env := newTestEnv()

	_, err := env.profileService.ToggleFavorite("octocat", "hello-world")
	require.NoError(t, err)
	_, err = env.profileService.ToggleFavorite("torvalds", "linux")
	require.NoError(t, err)

	_, err = env.profileService.ToggleFavorite("octocat", "hello-world")
	require.NoError(t, err)

	profile, err := env.profileService.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, []string{"torvalds/linux"}, profile.FavoriteRepos)
}
