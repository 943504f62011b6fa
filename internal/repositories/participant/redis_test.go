package participant

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hglok/raidsync/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newParticipant(id string, ptype models.ParticipantType) *models.Participant {
	return &models.Participant{
		ID:          id,
		GuildID:     "test-guild-id",
		DiscordID:   "discord-" + id,
		DisplayName: "Participant " + id,
		Job:         models.JobPaladin,
		Type:        ptype,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetParticipant() {
	p := s.newParticipant("p1", models.ParticipantTypeProgger)

	err := s.repo.SaveParticipant(context.Background(), &SaveParticipantInput{
		Participant: p,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		GuildID:         "test-guild-id",
		ParticipantType: models.ParticipantTypeProgger,
		ParticipantID:   "p1",
	})
	s.Require().NoError(err)
	s.Equal("p1", retrieved.ID)
	s.Equal("discord-p1", retrieved.DiscordID)
	s.Equal("Participant p1", retrieved.DisplayName)
	s.Equal(models.JobPaladin, retrieved.Job)
	s.Equal(models.ParticipantTypeProgger, retrieved.Type)
}

func (s *RedisRepositoryTestSuite) TestTypeIsPartOfTheKey() {
	p := s.newParticipant("p1", models.ParticipantTypeProgger)

	err := s.repo.SaveParticipant(context.Background(), &SaveParticipantInput{
		Participant: p,
	})
	s.Require().NoError(err)

	// Same ID under the other type does not resolve
	_, err = s.repo.GetParticipant(context.Background(), &GetParticipantInput{
		GuildID:         "test-guild-id",
		ParticipantType: models.ParticipantTypeHelper,
		ParticipantID:   "p1",
	})
	s.Require().ErrorIs(err, ErrParticipantNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveRejectsInvalidType() {
	p := s.newParticipant("p1", models.ParticipantType("raider"))

	err := s.repo.SaveParticipant(context.Background(), &SaveParticipantInput{
		Participant: p,
	})
	s.Require().Error(err)
}

func (s *RedisRepositoryTestSuite) TestDeleteParticipant() {
	ctx := context.Background()
	p := s.newParticipant("p1", models.ParticipantTypeHelper)

	s.Require().NoError(s.repo.SaveParticipant(ctx, &SaveParticipantInput{Participant: p}))

	err := s.repo.DeleteParticipant(ctx, &DeleteParticipantInput{
		GuildID:         "test-guild-id",
		ParticipantType: models.ParticipantTypeHelper,
		ParticipantID:   "p1",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetParticipant(ctx, &GetParticipantInput{
		GuildID:         "test-guild-id",
		ParticipantType: models.ParticipantTypeHelper,
		ParticipantID:   "p1",
	})
	s.Require().ErrorIs(err, ErrParticipantNotFound)

	pool, err := s.repo.ListParticipantsByGuild(ctx, &ListParticipantsByGuildInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)
	s.Empty(pool.Participants)
}

func (s *RedisRepositoryTestSuite) TestListParticipantsByGuild() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SaveParticipant(ctx, &SaveParticipantInput{
		Participant: s.newParticipant("p1", models.ParticipantTypeProgger),
	}))
	s.Require().NoError(s.repo.SaveParticipant(ctx, &SaveParticipantInput{
		Participant: s.newParticipant("p2", models.ParticipantTypeHelper),
	}))

	pool, err := s.repo.ListParticipantsByGuild(ctx, &ListParticipantsByGuildInput{
		GuildID: "test-guild-id",
	})
	s.Require().NoError(err)
	s.Len(pool.Participants, 2)
}
