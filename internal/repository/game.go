package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const (
	gamesCollection = "games"
	sgfKeyPrefix    = "sgf:"
	requestTimeout  = 5 * time.Second
)

// GameRepository keeps the SGF text of every game in redis and a summary
// record per game in mongo.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKey(ctx context.Context) string {
	return uuid.New().String()
}

func (g *GameRepository) SaveSGF(ctx context.Context, key string, sgfText string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if err := g.redis.Set(ctx, sgfKeyPrefix+key, sgfText, 0).Err(); err != nil {
		g.log.Errorf("failed to save sgf to redis: %v", err)
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// LoadSGF returns the stored text. A game that redis no longer holds is
// recovered from its mongo record.
func (g *GameRepository) LoadSGF(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	text, err := g.redis.Get(ctx, sgfKeyPrefix+key).Result()
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, redis.Nil) {
		g.log.Errorf("failed to load sgf from redis: %v", err)
		return "", fmt.Errorf("redis get: %w", err)
	}

	record, err := g.GetGameByGameKey(ctx, key)
	if err != nil {
		return "", err
	}
	if record.Sgf == "" {
		return "", errs.ErrGameNotFound
	}
	return record.Sgf, nil
}

func (g *GameRepository) PutGame(ctx context.Context, record game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	filter := bson.M{"game_key": record.GameKey}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		g.log.Errorf("failed to upsert game to database: %v", err)
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

func (g *GameRepository) GetGameByGameKey(ctx context.Context, key string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	filter := bson.M{"game_key": key}

	var result game.Record
	err := collection.FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Record{}, fmt.Errorf("mongo find: %w", err)
	}
	return result, nil
}

// ListGames returns one page of records, most recently updated first,
// without their SGF text.
func (g *GameRepository) ListGames(ctx context.Context, page int) ([]game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	limit := int64(g.cfg.PageLimitGames)
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64(page-1) * limit).
		SetLimit(limit).
		SetProjection(bson.M{"sgf": 0})

	cursor, err := g.mongo.Collection(gamesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		g.log.Error(err)
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cursor.Close(ctx)

	result := make([]game.Record, 0, limit)
	for cursor.Next(ctx) {
		var record game.Record
		if err = cursor.Decode(&record); err != nil {
			g.log.Error(err)
			return result, fmt.Errorf("mongo decode: %w", err)
		}
		result = append(result, record)
	}
	return result, cursor.Err()
}
