package http

import (
	"context"

	"OrgLink/internal/config"
	"OrgLink/internal/initial"
	jwtMiddleware "OrgLink/internal/middleware/jwt"
	notificationService "OrgLink/internal/modules/notification/application/service"
	notificationStorage "OrgLink/internal/modules/notification/domain/storage"
	notificationPersistence "OrgLink/internal/modules/notification/infrastructure/persistence"
	storageImpl "OrgLink/internal/modules/notification/infrastructure/storage"
	notificationHandler "OrgLink/internal/modules/notification/interface/http"
	organizationService "OrgLink/internal/modules/organization/application/service"
	organizationPersistence "OrgLink/internal/modules/organization/infrastructure/persistence"
	organizationHandler "OrgLink/internal/modules/organization/interface/http"
	"OrgLink/internal/modules/user/application/service"
	"OrgLink/internal/modules/user/infrastructure/persistence"
	userHandler "OrgLink/internal/modules/user/interface/http"
	"OrgLink/pkg/ssl"
	"OrgLink/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var GE *gin.Engine

// newAttachmentStore 按配置选择附件存储后端
func newAttachmentStore() notificationStorage.AttachmentStore {
	conf := config.GetConfig()
	switch conf.StorageConfig.Backend {
	case "s3":
		store, err := storageImpl.NewS3Store(context.Background(),
			conf.StorageConfig.Region, conf.StorageConfig.Bucket, conf.StorageConfig.KeyPrefix)
		if err != nil {
			zlog.Fatal("S3 附件存储初始化失败: " + err.Error())
		}
		return store
	default:
		store, err := storageImpl.NewLocalStore(conf.StorageConfig.LocalDir)
		if err != nil {
			zlog.Fatal("本地附件存储初始化失败: " + err.Error())
		}
		return store
	}
}

func init() {
	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	attachmentStore := newAttachmentStore()

	userRepo := persistence.NewUserInfoRepository(initial.GormDB)
	orgRepo := organizationPersistence.NewOrganizationRepository(initial.GormDB)
	notificationRepo := notificationPersistence.NewNotificationRepository(initial.GormDB)
	notificationUow := notificationPersistence.NewNotificationUnitOfWork(initial.GormDB)

	userSvc := service.NewUserInfoService(userRepo)
	orgSvc := organizationService.NewOrganizationService(orgRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationUow, orgRepo, attachmentStore)

	userH := userHandler.NewUserInfoHandler(userSvc)
	orgH := organizationHandler.NewOrganizationHandler(orgSvc)
	notificationH := notificationHandler.NewNotificationHandler(notificationSvc, attachmentStore)

	GE.POST("/login", userH.Login)
	GE.POST("/register", userH.Register)

	authed := GE.Group("/")
	authed.Use(jwtMiddleware.Auth())

	authed.POST("/notifications", notificationH.Create)
	authed.PUT("/notifications", notificationH.Update)
	authed.POST("/notifications/search", notificationH.Search)
	authed.GET("/notifications/status-counts", notificationH.StatusCounts)
	authed.GET("/notifications/:id", notificationH.Get)
	authed.DELETE("/notifications/:id", notificationH.Delete)

	authed.POST("/organizations", orgH.Create)
	authed.PUT("/organizations", orgH.Update)
	authed.POST("/organizations/list", orgH.List)
	authed.GET("/organizations/:id", orgH.Get)
	authed.DELETE("/organizations/:id", orgH.Delete)
}
