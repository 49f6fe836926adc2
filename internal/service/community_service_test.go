package service_test

import (
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityService_AddMemberTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	community := f.createCommunity(t)
	ana := f.createUser(t, "Ana")

	_, err := f.communities.AddMember(community.ID, ana.ID)
	require.NoError(t, err)

	_, err = f.communities.AddMember(community.ID, ana.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyMember)

	members, err := f.communities.ListMembers(community.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestCommunityService_AddThenRemove(t *testing.T) {
	f := newFixture(t)
	community := f.createCommunity(t)
	ana := f.createUser(t, "Ana")
	luis := f.createUser(t, "Luis")

	_, err := f.communities.AddMember(community.ID, ana.ID)
	require.NoError(t, err)
	_, err = f.communities.AddMember(community.ID, luis.ID)
	require.NoError(t, err)

	_, err = f.communities.RemoveMember(community.ID, ana.ID)
	require.NoError(t, err)

	members, err := f.communities.ListMembers(community.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, luis.ID, members[0].ID)

	_, err = f.communities.RemoveMember(community.ID, ana.ID)
	assert.ErrorIs(t, err, util.ErrNotMember)
}

func TestCommunityService_NotFound(t *testing.T) {
	f := newFixture(t)
	community := f.createCommunity(t)
	ana := f.createUser(t, "Ana")

	_, err := f.communities.AddMember(999, ana.ID)
	assert.ErrorIs(t, err, util.ErrCommunityNotFound)

	_, err = f.communities.AddMember(community.ID, 999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = f.communities.RemoveMember(999, ana.ID)
	assert.ErrorIs(t, err, util.ErrCommunityNotFound)

	_, err = f.communities.ListMembers(999)
	assert.ErrorIs(t, err, util.ErrCommunityNotFound)

	_, err = f.communities.ListUserCommunities(999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	assert.ErrorIs(t, f.communities.DeleteCommunity(999), util.ErrCommunityNotFound)
}

func TestCommunityService_UserCommunitiesAndSummaries(t *testing.T) {
	f := newFixture(t)
	first := f.createCommunity(t)
	second, err := f.communities.CreateCommunity(service.CommunityRequest{ChallengeName: "SQL diario", Category: "Bases de Datos", Duration: 14})
	require.NoError(t, err)
	ana := f.createUser(t, "Ana")
	luis := f.createUser(t, "Luis")

	for _, pair := range [][2]uint{{first.ID, ana.ID}, {first.ID, luis.ID}, {second.ID, ana.ID}} {
		_, err := f.communities.AddMember(pair[0], pair[1])
		require.NoError(t, err)
	}

	joined, err := f.communities.ListUserCommunities(ana.ID)
	require.NoError(t, err)
	assert.Len(t, joined, 2)

	summaries, err := f.communities.ListSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, int64(2), summaries[0].MemberCount)
	assert.Equal(t, int64(1), summaries[1].MemberCount)

	require.NoError(t, f.communities.DeleteCommunity(first.ID))

	joined, err = f.communities.ListUserCommunities(luis.ID)
	require.NoError(t, err)
	assert.Empty(t, joined)
}

func TestCommunityService_Update(t *testing.T) {
	f := newFixture(t)
	community := f.createCommunity(t)

	updated, err := f.communities.UpdateCommunity(community.ID, service.CommunityRequest{ChallengeName: "Reto de 30 días", Category: "Python", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Duration)

	stored, err := f.communities.GetCommunity(community.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reto de 30 días", stored.ChallengeName)

	_, err = f.communities.UpdateCommunity(999, service.CommunityRequest{ChallengeName: "x", Category: "x", Duration: 1})
	assert.ErrorIs(t, err, util.ErrCommunityNotFound)
}
