package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/creatorlink/config"
	repo "github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/pkg/helpers"
	"github.com/oksasatya/creatorlink/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons. Optional clients stay nil
// when their service is not configured.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	gcsClient   *storage.Client

	kv       repo.Storage
	identity repo.IdentityBackend

	jwtManager *helpers.JWTManager

	mailgunClient *mailer.Mailgun
	rabbitPub     *helpers.RabbitPublisher
	esClient      *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return logger
}
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }
func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

// SetStorage sets the persisted client key-value storage.
func SetStorage(s repo.Storage)               { kv = s }
func GetStorage() repo.Storage                { return kv }
func SetIdentity(b repo.IdentityBackend)      { identity = b }
func GetIdentity() repo.IdentityBackend       { return identity }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func SetMailgun(m *mailer.Mailgun)            { mailgunClient = m }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

func GetJWT() *helpers.JWTManager {
	if jwtManager == nil {
		c := GetConfig()
		jwtManager = helpers.NewJWTManager(c.JWTAccessSecret, c.JWTRefreshSecret, c.AccessTTL, c.RefreshTTL)
	}
	return jwtManager
}

// GetMailgun returns the sender, building it from config when unset.
func GetMailgun() *mailer.Mailgun {
	if mailgunClient == nil {
		c := GetConfig()
		mailgunClient = mailer.NewMailgun(c.MailgunDomain, c.MailgunAPIKey, c.MailgunSender)
	}
	return mailgunClient
}
