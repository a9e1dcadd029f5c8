package configuration

import (
	"context"
	"fmt"
	"time"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/ai"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/auth"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/db"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/handler"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/hub"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Container wires the whole application graph once at startup.
type Container struct {
	Config *Config
	Logger *zap.Logger
	Hub    *hub.Hub

	Tokens *auth.TokenManager
	Users  repo.UserRepository

	AuthHandler         handler.AuthHandler
	ConnectionHandler   handler.ConnectionHandler
	PostHandler         handler.PostHandler
	ChatHandler         handler.ChatHandler
	NotificationHandler handler.NotificationHandler
	ProfileHandler      handler.ProfileHandler
	SettingsHandler     handler.SettingsHandler
	UploadHandler       handler.UploadHandler
	GenerateHandler     handler.GenerateHandler
	MonitorHandler      handler.MonitorHandler

	// private, kept for Close
	mongoDB *mongo.Database
}

func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	con, err := db.OpenConnection(config.Mongo.Uri, config.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("open mongo connection: %w", err)
	}

	userRepo := repo.NewUserRepository(con, db.NewRepository[model.User](con, config.Mongo.UsersCollection))
	connectionRepo := repo.NewConnectionRepository(con, db.NewRepository[model.Connection](con, config.Mongo.ConnectionsCollection))
	messageRepo := repo.NewMessageRepository(con, db.NewRepository[model.Message](con, config.Mongo.MessagesCollection), logger)
	notificationRepo := repo.NewNotificationRepository(con, db.NewRepository[model.Notification](con, config.Mongo.NotificationsCollection), logger)
	postRepo := repo.NewPostRepository(con, db.NewRepository[model.Post](con, config.Mongo.PostsCollection))
	profileRepo := repo.NewProfileRepository(con, db.NewRepository[model.Profile](con, config.Mongo.ProfilesCollection))
	settingsRepo := repo.NewSettingsRepository(con, db.NewRepository[model.UserSettings](con, config.Mongo.SettingsCollection))

	tokens := auth.NewTokenManager(
		config.Auth.AccessSecret,
		config.Auth.RefreshSecret,
		time.Duration(config.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(config.Auth.RefreshTTLDays)*24*time.Hour,
	)

	wsHub := hub.NewHub(tokens, userRepo, connectionRepo, messageRepo, config.Server.AllowedOrigins, logger)

	provider, err := ai.NewLangchainProvider(config.AI.APIKey, config.AI.BaseURL, config.AI.Models, logger)
	if err != nil {
		logger.Warn("generation provider disabled", zap.Error(err))
		provider = nil
	}

	notifier := handler.NewNotifier(notificationRepo, wsHub, logger)

	c := &Container{
		Config: config,
		Logger: logger,
		Hub:    wsHub,
		Tokens: tokens,
		Users:  userRepo,

		AuthHandler:         handler.NewAuthHandler(userRepo, profileRepo, tokens, logger),
		ConnectionHandler:   handler.NewConnectionHandler(connectionRepo, userRepo, notifier, wsHub, logger),
		PostHandler:         handler.NewPostHandler(postRepo, notifier, logger),
		ChatHandler:         handler.NewChatHandler(messageRepo, connectionRepo, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationRepo, notifier, logger),
		ProfileHandler:      handler.NewProfileHandler(profileRepo, logger),
		SettingsHandler:     handler.NewSettingsHandler(settingsRepo, logger),
		UploadHandler:       handler.NewUploadHandler(profileRepo, config.Upload.Dir, config.Upload.MaxSizeMB, logger),
		MonitorHandler:      handler.NewMonitorHandler(wsHub),

		mongoDB: con,
	}
	if provider != nil {
		c.GenerateHandler = handler.NewGenerateHandler(provider, logger)
	}

	return c, nil
}

// Close shuts the graph down in reverse order: hub first so websocket
// connections drain, then the logger, then the Mongo pool.
func (c *Container) Close() error {
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.mongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoDB.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("close mongo connection: %w", err)
		}
	}

	return nil
}
