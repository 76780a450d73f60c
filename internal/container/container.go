package container

import (
	gcstorage "cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cars-api/config"
	"cars-api/pkg/helpers"
	"cars-api/pkg/storage"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *gcstorage.Client
	photoStore  storage.PhotoStore
	jwtManager  *helpers.JWTManager
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)        { cfg = c }
func GetConfig() *config.Config         { return cfg }
func SetLogger(l *logrus.Logger)        { logger = l }
func GetLogger() *logrus.Logger         { return logger }
func SetPGPool(p *pgxpool.Pool)         { pgPool = p }
func GetPGPool() *pgxpool.Pool          { return pgPool }
func SetRedis(r *redis.Client)          { redisClient = r }
func GetRedis() *redis.Client           { return redisClient }
func SetGCS(s *gcstorage.Client)        { gcsClient = s }
func GetGCS() *gcstorage.Client         { return gcsClient }
func SetPhotos(s storage.PhotoStore)    { photoStore = s }
func GetPhotos() storage.PhotoStore     { return photoStore }
func SetJWT(m *helpers.JWTManager)      { jwtManager = m }
func GetJWT() *helpers.JWTManager       { return jwtManager }
func SetES(c *elasticsearch.Client)     { esClient = c }
func GetES() *elasticsearch.Client      { return esClient }
