package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"settings_backend/internal/middleware"
	"settings_backend/internal/services"
	"settings_backend/internal/services/dto"
)

// SettingsHandler - REST-шлюз настроек каналов связи пользователя.
type SettingsHandler struct {
	*BaseHandler
	settingsService     services.SettingsService
	verificationService services.VerificationService
	activationService   services.ActivationService
}

func NewSettingsHandler(
	base *BaseHandler,
	settingsService services.SettingsService,
	verificationService services.VerificationService,
	activationService services.ActivationService,
) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:         base,
		settingsService:     settingsService,
		verificationService: verificationService,
		activationService:   activationService,
	}
}

// GetMySettings godoc
// @Summary Получить настройки текущего пользователя
// @Description Возвращает настройки каналов связи владельца токена. При первом обращении запись настроек создается автоматически.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Failure 401 {object} apperrors.ErrorResponse "Невалидный токен"
// @Router /settings/me [get]
func (h *SettingsHandler) GetMySettings(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	settings, err := h.settingsService.FindSettings(c.Request.Context(), middleware.GetAccessToken(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetUserSettings godoc
// @Summary Получить настройки пользователя по его ID
// @Description Административное чтение настроек каналов другого пользователя.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя (Keycloak)"
// @Success 200 {object} dto.SettingsResponse
// @Failure 403 {object} apperrors.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} apperrors.ErrorResponse "Настройки не найдены"
// @Router /settings/{userId} [get]
func (h *SettingsHandler) GetUserSettings(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	settings, err := h.settingsService.FindSettingsByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetInboxMessages godoc
// @Summary Получить сообщения inbox-канала
// @Description Возвращает страницу сообщений внутреннего кабинета владельца токена, новые сверху.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.InboxMessagesResponse
// @Failure 401 {object} apperrors.ErrorResponse "Невалидный токен"
// @Router /settings/me/inbox [get]
func (h *SettingsHandler) GetInboxMessages(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	limit, offset := ParsePagination(c)

	messages, err := h.settingsService.FindInboxMessages(
		c.Request.Context(), middleware.GetAccessToken(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendVerificationCode godoc
// @Summary Отправить код подтверждения канала
// @Description Генерирует одноразовый код и отправляет его по указанному адресу выбранного канала. Повторный запрос аннулирует предыдущий код.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channel path string true "Канал связи" Enums(email, diia, inbox)
// @Param input body dto.VerificationInput true "Адрес канала"
// @Success 200 {object} dto.VerificationCodeExpiration
// @Failure 400 {object} apperrors.ErrorResponse "Невалидный адрес"
// @Failure 403 {object} apperrors.ErrorResponse "Роль не допускает операцию"
// @Failure 502 {object} apperrors.ErrorResponse "Ошибка доставки кода"
// @Router /settings/me/channels/{channel}/verification-code [post]
func (h *SettingsHandler) SendVerificationCode(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	channel, ok := h.ParseChannelParam(c)
	if !ok {
		return
	}

	var input dto.VerificationInput
	if !h.BindAndValidate_JSON(c, &input) {
		return
	}

	expiration, err := h.verificationService.SendVerificationCode(
		c.Request.Context(), channel, &input, middleware.GetAccessToken(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expiration)
}

// ActivateChannel godoc
// @Summary Активировать канал связи
// @Description Активирует канал после сверки кода подтверждения и адреса с ранее выданным challenge.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channel path string true "Канал связи" Enums(email, diia, inbox)
// @Param input body dto.ActivateChannelInput true "Адрес и код подтверждения"
// @Success 200 {object} map[string]string
// @Failure 400 {object} apperrors.ErrorResponse "Код или адрес не совпали"
// @Failure 403 {object} apperrors.ErrorResponse "Роль не допускает операцию"
// @Router /settings/me/channels/{channel}/activate [post]
func (h *SettingsHandler) ActivateChannel(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	channel, ok := h.ParseChannelParam(c)
	if !ok {
		return
	}

	var input dto.ActivateChannelInput
	if !h.BindAndValidate_JSON(c, &input) {
		return
	}

	err := h.activationService.ActivateChannel(
		c.Request.Context(), channel, &input, middleware.GetAccessToken(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Channel activated successfully"})
}

// DeactivateChannel godoc
// @Summary Деактивировать канал связи
// @Description Деактивирует канал с указанием причины. Код подтверждения не требуется. Адрес опционален: без него запись сохраняет прежний адрес.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channel path string true "Канал связи" Enums(email, diia, inbox)
// @Param input body dto.DeactivateChannelInput true "Причина деактивации"
// @Success 200 {object} map[string]string
// @Failure 403 {object} apperrors.ErrorResponse "Роль не допускает операцию"
// @Router /settings/me/channels/{channel}/deactivate [post]
func (h *SettingsHandler) DeactivateChannel(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	channel, ok := h.ParseChannelParam(c)
	if !ok {
		return
	}

	var input dto.DeactivateChannelInput
	if !h.BindAndValidate_JSON(c, &input) {
		return
	}

	err := h.activationService.DeactivateChannel(
		c.Request.Context(), channel, &input, middleware.GetAccessToken(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Channel deactivated successfully"})
}
