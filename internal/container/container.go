package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kgnit/employee-tasks/config"
	"github.com/kgnit/employee-tasks/pkg/helpers"
	"github.com/kgnit/employee-tasks/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

// Notifier builds the outbound email capability from the configured RabbitMQ
// publisher. With sending disabled the notifier is still non-nil and simply
// drops jobs, so services never branch on wiring. With sending enabled but no
// broker connected, Send fails and callers roll back.
func Notifier() *mailer.QueueNotifier {
	c := GetConfig()
	enabled := c != nil && c.MailSendEnabled
	return mailer.NewQueueNotifier(GetRabbitPub(), enabled)
}
