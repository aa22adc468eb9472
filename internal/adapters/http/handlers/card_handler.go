package handlers

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"pichincha-tarjetas/internal/core/domain"
	"pichincha-tarjetas/internal/core/services"
	"pichincha-tarjetas/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{10}$`)
	phonePattern      = regexp.MustCompile(`^\d{10}$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// CardHandler handles debit card endpoints
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCardRequest represents a card issuance request
type CreateCardRequest struct {
	HolderName     string           `json:"nombre_titular"`
	NationalID     string           `json:"cedula"`
	DailyLimit     decimal.Decimal  `json:"limite_diario"`
	InitialBalance *decimal.Decimal `json:"saldo_inicial"`
	CardType       string           `json:"tipo_tarjeta"`
	Phone          string           `json:"telefono,omitempty"`
	Email          string           `json:"email,omitempty"`
}

// UpdateCardRequest represents a partial card update. Status is not part
// of this payload; status changes go through the transition endpoints.
type UpdateCardRequest struct {
	DailyLimit *decimal.Decimal `json:"limite_diario"`
	Phone      *string          `json:"telefono"`
	Email      *string          `json:"email"`
}

// CardResponse is the wire representation of a card
type CardResponse struct {
	ID                string          `json:"id"`
	CardNumber        string          `json:"numero_tarjeta"`
	HolderName        string          `json:"nombre_titular"`
	NationalID        string          `json:"cedula"`
	ExpirationDate    string          `json:"fecha_expiracion"`
	CVV               string          `json:"cvv"`
	DailyLimit        decimal.Decimal `json:"limite_diario"`
	AvailableBalance  decimal.Decimal `json:"saldo_disponible"`
	Status            string          `json:"estado"`
	StatusDescription string          `json:"estado_descripcion"`
	CardType          string          `json:"tipo_tarjeta"`
	TypeDescription   string          `json:"tipo_descripcion"`
	Phone             string          `json:"telefono,omitempty"`
	Email             string          `json:"email,omitempty"`
	CreatedAt         time.Time       `json:"fecha_creacion"`
	UpdatedAt         time.Time       `json:"fecha_actualizacion"`
}

func toCardResponse(card *domain.Card) *CardResponse {
	return &CardResponse{
		ID:                card.ID,
		CardNumber:        card.CardNumber,
		HolderName:        card.HolderName,
		NationalID:        card.NationalID,
		ExpirationDate:    card.ExpirationDate.Format("2006-01-02"),
		CVV:               card.CVV,
		DailyLimit:        card.DailyLimit,
		AvailableBalance:  card.AvailableBalance,
		Status:            string(card.Status),
		StatusDescription: card.Status.Description(),
		CardType:          string(card.CardType),
		TypeDescription:   card.CardType.Description(),
		Phone:             card.Phone,
		Email:             card.Email,
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
	}
}

func toCardResponseList(cards []*domain.Card) []*CardResponse {
	out := make([]*CardResponse, len(cards))
	for i, card := range cards {
		out[i] = toCardResponse(card)
	}
	return out
}

// Create issues a new debit card
// @Summary Issue debit card
// @Description Issue a new debit card with generated number and CVV
// @Tags Tarjetas
// @Accept json
// @Produce json
// @Param body body CreateCardRequest true "Card data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tarjetas-debito [post]
func (h *CardHandler) Create(c *fiber.Ctx) error {
	var req CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validateCreateRequest(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != nil {
		initialBalance = *req.InitialBalance
	}

	card, err := h.cardService.Issue(c.Context(), &services.IssueCardInput{
		HolderName:     req.HolderName,
		NationalID:     req.NationalID,
		DailyLimit:     req.DailyLimit,
		InitialBalance: initialBalance,
		CardType:       domain.CardType(req.CardType),
		Phone:          req.Phone,
		Email:          req.Email,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, "Tarjeta creada exitosamente", toCardResponse(card))
}

// List lists all debit cards
// @Summary List debit cards
// @Tags Tarjetas
// @Produce json
// @Success 200 {object} response.Response
// @Router /tarjetas-debito [get]
func (h *CardHandler) List(c *fiber.Ctx) error {
	cards, err := h.cardService.ListAll(c.Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// GetByID gets a card by ID
// @Summary Get card by ID
// @Tags Tarjetas
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id} [get]
func (h *CardHandler) GetByID(c *fiber.Ctx) error {
	card, err := h.cardService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponse(card))
}

// GetByNumber gets a card by its 16-digit number
// @Summary Get card by number
// @Tags Tarjetas
// @Produce json
// @Param numero path string true "Card number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/numero/{numero} [get]
func (h *CardHandler) GetByNumber(c *fiber.Ctx) error {
	card, err := h.cardService.GetByNumber(c.Context(), c.Params("numero"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponse(card))
}

// ListByNationalID lists cards by holder national id
// @Summary List cards by cedula
// @Tags Tarjetas
// @Produce json
// @Param cedula path string true "Holder national id"
// @Success 200 {object} response.Response
// @Router /tarjetas-debito/cedula/{cedula} [get]
func (h *CardHandler) ListByNationalID(c *fiber.Ctx) error {
	cards, err := h.cardService.ListByNationalID(c.Context(), c.Params("cedula"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// ListActiveByNationalID lists a holder's active cards
// @Summary List active cards by cedula
// @Tags Tarjetas
// @Produce json
// @Param cedula path string true "Holder national id"
// @Success 200 {object} response.Response
// @Router /tarjetas-debito/activas/cedula/{cedula} [get]
func (h *CardHandler) ListActiveByNationalID(c *fiber.Ctx) error {
	cards, err := h.cardService.ListActiveByNationalID(c.Context(), c.Params("cedula"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// ListByStatus lists cards by status
// @Summary List cards by status
// @Tags Tarjetas
// @Produce json
// @Param estado path string true "Card status" Enums(ACTIVE, BLOCKED, SUSPENDED, CANCELLED, EXPIRED)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tarjetas-debito/estado/{estado} [get]
func (h *CardHandler) ListByStatus(c *fiber.Ctx) error {
	status := domain.CardStatus(strings.ToUpper(c.Params("estado")))
	cards, err := h.cardService.ListByStatus(c.Context(), status)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// ListByType lists cards by product tier
// @Summary List cards by type
// @Tags Tarjetas
// @Produce json
// @Param tipo path string true "Card type" Enums(CLASSIC, GOLD, PLATINUM, SIGNATURE, BUSINESS)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tarjetas-debito/tipo/{tipo} [get]
func (h *CardHandler) ListByType(c *fiber.Ctx) error {
	cardType := domain.CardType(strings.ToUpper(c.Params("tipo")))
	cards, err := h.cardService.ListByType(c.Context(), cardType)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// Search searches cards by holder name
// @Summary Search cards by holder name
// @Tags Tarjetas
// @Produce json
// @Param nombre query string true "Holder name substring, case-insensitive"
// @Success 200 {object} response.Response
// @Router /tarjetas-debito/buscar [get]
func (h *CardHandler) Search(c *fiber.Ctx) error {
	name := c.Query("nombre")
	if name == "" {
		return response.BadRequest(c, "El parámetro 'nombre' es obligatorio")
	}
	cards, err := h.cardService.SearchByHolderName(c.Context(), name)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// ListExpiringSoon lists active cards expiring within 30 days
// @Summary List cards expiring soon
// @Tags Tarjetas
// @Produce json
// @Success 200 {object} response.Response
// @Router /tarjetas-debito/proximas-vencer [get]
func (h *CardHandler) ListExpiringSoon(c *fiber.Ctx) error {
	cards, err := h.cardService.ListExpiringSoon(c.Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", toCardResponseList(cards))
}

// CountByStatus counts cards in a status
// @Summary Count cards by status
// @Tags Tarjetas
// @Produce json
// @Param estado path string true "Card status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tarjetas-debito/contar/estado/{estado} [get]
func (h *CardHandler) CountByStatus(c *fiber.Ctx) error {
	status := domain.CardStatus(strings.ToUpper(c.Params("estado")))
	count, err := h.cardService.CountByStatus(c.Context(), status)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "", fiber.Map{
		"estado": string(status),
		"total":  count,
	})
}

// Update partially updates a card
// @Summary Update card
// @Description Update daily limit and contact data. Status changes go through the transition endpoints.
// @Tags Tarjetas
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param body body UpdateCardRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id} [put]
func (h *CardHandler) Update(c *fiber.Ctx) error {
	var req UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone != nil && *req.Phone != "" && !phonePattern.MatchString(*req.Phone) {
		return response.BadRequest(c, "El teléfono debe tener exactamente 10 dígitos")
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		return response.BadRequest(c, "El email debe tener un formato válido")
	}

	card, err := h.cardService.Update(c.Context(), c.Params("id"), &services.UpdateCardInput{
		DailyLimit: req.DailyLimit,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Tarjeta actualizada exitosamente", toCardResponse(card))
}

// Block blocks a card
// @Summary Block card
// @Tags Tarjetas
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id}/bloquear [put]
func (h *CardHandler) Block(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Block, "Tarjeta bloqueada exitosamente")
}

// Unblock unblocks a card
// @Summary Unblock card
// @Tags Tarjetas
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id}/desbloquear [put]
func (h *CardHandler) Unblock(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Unblock, "Tarjeta desbloqueada exitosamente")
}

// Suspend suspends a card
// @Summary Suspend card
// @Tags Tarjetas
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id}/suspender [put]
func (h *CardHandler) Suspend(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Suspend, "Tarjeta suspendida exitosamente")
}

// Reactivate reactivates a suspended card
// @Summary Reactivate card
// @Tags Tarjetas
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id}/reactivar [put]
func (h *CardHandler) Reactivate(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Reactivate, "Tarjeta reactivada exitosamente")
}

// Cancel cancels a card (terminal)
// @Summary Cancel card
// @Tags Tarjetas
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id}/cancelar [put]
func (h *CardHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.cardService.Cancel, "Tarjeta cancelada exitosamente")
}

// Delete hard-deletes a card
// @Summary Delete card
// @Tags Tarjetas
// @Param id path string true "Card ID"
// @Success 204 "Deleted"
// @Failure 404 {object} response.Response
// @Router /tarjetas-debito/{id} [delete]
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.cardService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Tarjeta no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SweepExpired expires all overdue cards
// @Summary Expire overdue cards
// @Description Transition every card past its expiration date to EXPIRED
// @Tags Tarjetas
// @Produce json
// @Success 200 {object} response.Response
// @Router /tarjetas-debito/actualizar-vencidas [put]
func (h *CardHandler) SweepExpired(c *fiber.Ctx) error {
	count, err := h.cardService.SweepExpired(c.Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Tarjetas vencidas actualizadas", fiber.Map{
		"actualizadas": count,
	})
}

// transition runs a status-transition operation and shapes the result
func (h *CardHandler) transition(c *fiber.Ctx, op func(ctx context.Context, id string) (*domain.Card, error), message string) error {
	card, err := op(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, message, toCardResponse(card))
}

// mapError translates domain errors to HTTP responses
func (h *CardHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		return response.NotFound(c, "Tarjeta no encontrada")
	case errors.Is(err, domain.ErrActiveCardExists):
		return response.Conflict(c, "Ya existe una tarjeta activa para la cédula")
	case errors.Is(err, domain.ErrCardNumberTaken):
		return response.Conflict(c, "Conflicto al generar el número de tarjeta, intente nuevamente")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Transición de estado no permitida")
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return response.Conflict(c, "La tarjeta fue modificada por otra operación, intente nuevamente")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		return response.BadRequest(c, "Estado de tarjeta inválido")
	case errors.Is(err, domain.ErrInvalidCardType):
		return response.BadRequest(c, "Tipo de tarjeta inválido")
	default:
		return response.InternalServerError(c, "Error interno del servidor")
	}
}

func validateCreateRequest(req *CreateCardRequest) string {
	name := strings.TrimSpace(req.HolderName)
	if name == "" {
		return "El nombre del titular es obligatorio"
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return "El nombre debe tener entre 2 y 100 caracteres"
	}
	if !nationalIDPattern.MatchString(req.NationalID) {
		return "La cédula debe tener exactamente 10 dígitos"
	}
	if !req.DailyLimit.IsPositive() {
		return "El límite diario debe ser mayor que 0"
	}
	if req.InitialBalance != nil && req.InitialBalance.IsNegative() {
		return "El saldo inicial debe ser mayor o igual a 0"
	}
	if !domain.CardType(req.CardType).IsValid() {
		return "El tipo de tarjeta es inválido"
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return "El teléfono debe tener exactamente 10 dígitos"
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		return "El email debe tener un formato válido"
	}
	return ""
}
