// описание хэндлеров HTTP API доски вакансий
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/converters"
	"jobboard/board_service/internal/board_server/service"
	"jobboard/board_service/internal/domain/models"
	"jobboard/shared/cookie"
	"jobboard/shared/middleware"
)

// заголовок ответа, построенного на демонстрационных данных
const DegradedHeader = "X-Data-Degraded"

// Services - сервисы, которые использует слой хэндлеров
type Services struct {
	Public       service.PublicServiceInterface
	Jobs         service.JobServiceInterface
	Applications service.ApplicationServiceInterface
	Dashboard    service.DashboardServiceInterface
	Auth         service.AuthServiceInterface
	Follows      service.FollowServiceInterface
}

// структура хэндлера доски вакансий
type BoardHandler struct {
	public       service.PublicServiceInterface
	jobs         service.JobServiceInterface
	applications service.ApplicationServiceInterface
	dashboard    service.DashboardServiceInterface
	auth         service.AuthServiceInterface
	follows      service.FollowServiceInterface

	cookies cookie.CookieManagerInterface
	oauth   *configs.OAuthConfig
	listing *configs.ListingConfig
	logger  *slog.Logger
}

// конструктор для слоя хэндлеров
func NewBoardHandler(services Services, cookies cookie.CookieManagerInterface, oauthCfg *configs.OAuthConfig, listingCfg *configs.ListingConfig, logger *slog.Logger) *BoardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHandler{
		public:       services.Public,
		jobs:         services.Jobs,
		applications: services.Applications,
		dashboard:    services.Dashboard,
		auth:         services.Auth,
		follows:      services.Follows,
		cookies:      cookies,
		oauth:        oauthCfg,
		listing:      listingCfg,
		logger:       logger,
	}
}

// метод проверки работоспособности сервера
func (h *BoardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// identity - пользователь из сессии; маршрут должен стоять за SessionAuth
func (h *BoardHandler) identity(c *gin.Context) (models.Identity, bool) {
	subject, ok := middleware.GetSession(c)
	if !ok {
		h.respondError(c, models.ErrUnauthorized)
		return models.Identity{}, false
	}
	return converters.IdentityFromSubject(subject), true
}

// validated достаёт модель, которую положил ValidateJSON
func validated[T any](c *gin.Context) (*T, bool) {
	value, exists := c.Get(middleware.ValidatedDataKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Error: "invalid request data"})
		return nil, false
	}
	req, ok := value.(*T)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{Error: "server configuration error"})
		return nil, false
	}
	return req, true
}

// markDegraded помечает ответ, собранный из демонстрационного набора
func markDegraded(c *gin.Context, degraded bool) {
	if degraded {
		c.Header(DegradedHeader, "1")
	}
}
