// Package http is the inbound adapter: a Telegram webhook endpoint that
// turns chat updates into commands and queries, plus a health probe.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"buffet/internal/core/application/auth"
	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/model/profile"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// secretTokenHeader is the header Telegram echoes back when the webhook was
// registered with a secret token.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Update is the incoming Telegram webhook payload, trimmed to the fields the
// workflow uses.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// Message is an inbound chat message.
type Message struct {
	From *User  `json:"from"`
	Chat *Chat  `json:"chat"`
	Text string `json:"text"`
}

// CallbackQuery is a button press on a previously sent inline keyboard.
type CallbackQuery struct {
	From *User  `json:"from"`
	Data string `json:"data"`
}

// User identifies the acting chat user.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Chat identifies the conversation.
type Chat struct {
	ID int64 `json:"id"`
}

// Catalog is the menu surface the server renders from. Satisfied by the
// catalog cache.
type Catalog interface {
	ListAvailable(ctx context.Context) []item.Item
	Find(ctx context.Context, id kernel.UUID) (item.Item, bool)
}

// Server handles Telegram webhook updates. It resolves (actor, intent) from
// each update, authorizes through the role gate, invokes the matching use
// case and replies through the messenger.
type Server struct {
	secret    string
	roleGate  *auth.RoleGate
	messenger ports.Messenger
	profiles  ports.ProfileRepository
	catalog   Catalog
	logger    *slog.Logger

	// Command handlers
	addCartItemHandler commands.AddCartItemCommandHandler
	removeCartItem     commands.RemoveCartItemCommandHandler
	checkoutHandler    commands.CheckoutCommandHandler
	claimOrderHandler  commands.ClaimOrderCommandHandler
	markReadyHandler   commands.MarkOrderReadyCommandHandler
	completeHandler    commands.CompleteOrderCommandHandler

	// Query handlers
	getCartHandler      queries.GetCartQueryHandler
	getNewOrdersHandler queries.GetNewOrdersQueryHandler
	getActiveHandler    queries.GetActiveOrderQueryHandler
	getHistoryHandler   queries.GetOrderHistoryQueryHandler
}

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	AddCartItem    commands.AddCartItemCommandHandler
	RemoveCartItem commands.RemoveCartItemCommandHandler
	Checkout       commands.CheckoutCommandHandler
	ClaimOrder     commands.ClaimOrderCommandHandler
	MarkOrderReady commands.MarkOrderReadyCommandHandler
	CompleteOrder  commands.CompleteOrderCommandHandler

	GetCart         queries.GetCartQueryHandler
	GetNewOrders    queries.GetNewOrdersQueryHandler
	GetActiveOrder  queries.GetActiveOrderQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
}

// NewServer creates the webhook server.
func NewServer(
	secret string,
	roleGate *auth.RoleGate,
	messenger ports.Messenger,
	profiles ports.ProfileRepository,
	catalog Catalog,
	handlers Handlers,
	logger *slog.Logger,
) *Server {
	return &Server{
		secret:    secret,
		roleGate:  roleGate,
		messenger: messenger,
		profiles:  profiles,
		catalog:   catalog,
		logger:    logger.With("component", "webhook"),

		addCartItemHandler: handlers.AddCartItem,
		removeCartItem:     handlers.RemoveCartItem,
		checkoutHandler:    handlers.Checkout,
		claimOrderHandler:  handlers.ClaimOrder,
		markReadyHandler:   handlers.MarkOrderReady,
		completeHandler:    handlers.CompleteOrder,

		getCartHandler:      handlers.GetCart,
		getNewOrdersHandler: handlers.GetNewOrders,
		getActiveHandler:    handlers.GetActiveOrder,
		getHistoryHandler:   handlers.GetOrderHistory,
	}
}

// RegisterRoutes attaches the webhook and health endpoints.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhook", s.handleWebhook)
	e.GET("/health", s.handleHealth)
}

func (s *Server) handleHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// handleWebhook processes one Telegram update. Processing failures reply to
// the user in chat and still return 200: returning an error status would
// only make Telegram redeliver an update that will fail the same way.
func (s *Server) handleWebhook(ctx echo.Context) error {
	if s.secret != "" && ctx.Request().Header.Get(secretTokenHeader) != s.secret {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	var update Update
	if err := ctx.Bind(&update); err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	reqCtx := ctx.Request().Context()

	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		s.dispatchCallback(reqCtx, update.CallbackQuery.From, update.CallbackQuery.Data)
	case update.Message != nil && update.Message.From != nil:
		s.dispatchMessage(reqCtx, update.Message)
	}

	return ctx.NoContent(http.StatusOK)
}

func (s *Server) dispatchMessage(ctx context.Context, msg *Message) {
	actor := msg.From

	switch strings.TrimSpace(msg.Text) {
	case "/start":
		s.handleStart(ctx, actor)
	case "/menu":
		s.sendMenu(ctx, actor.ID)
	case "/cart":
		s.sendCart(ctx, actor.ID)
	case "/orders":
		s.sendHistory(ctx, actor.ID)
	case "/new":
		s.sendNewOrders(ctx, actor.ID)
	default:
		s.reply(ctx, actor.ID, "I didn't understand that. Send /menu to see what's on offer.")
	}
}

func (s *Server) dispatchCallback(ctx context.Context, actor *User, data string) {
	intent, arg, _ := strings.Cut(data, ":")

	switch intent {
	case "menu":
		s.sendMenu(ctx, actor.ID)
	case "cat":
		s.sendCategory(ctx, actor.ID, arg)
	case "cart":
		s.sendCart(ctx, actor.ID)
	case "orders":
		s.sendHistory(ctx, actor.ID)
	case "new":
		s.sendNewOrders(ctx, actor.ID)
	case "add":
		s.handleAdd(ctx, actor.ID, arg)
	case "rm":
		s.handleRemove(ctx, actor.ID, arg)
	case "checkout":
		s.handleCheckout(ctx, actor.ID, arg)
	case "claim":
		s.handleClaim(ctx, actor.ID, arg)
	case "ready":
		s.handleReady(ctx, actor.ID, arg)
	case "done":
		s.handleComplete(ctx, actor.ID, arg)
	default:
		s.logger.Warn("unknown callback intent", "data", data, "actor_id", actor.ID)
	}
}

func (s *Server) handleStart(ctx context.Context, actor *User) {
	fullName := strings.TrimSpace(actor.FirstName + " " + actor.LastName)

	p, err := profile.NewProfile(actor.ID, actor.Username, fullName, profile.RoleCustomer)
	if err != nil {
		s.logger.Error("build profile", "actor_id", actor.ID, "error", err)
		return
	}

	// The upsert never overwrites an existing role, so an operator sending
	// /start keeps their station.
	if err = s.profiles.Upsert(ctx, p); err != nil {
		s.logger.Error("upsert profile", "actor_id", actor.ID, "error", err)
		s.reply(ctx, actor.ID, "Something went wrong, please try again.")
		return
	}

	s.reply(ctx, actor.ID, "Welcome to the buffet! Choose something from the menu.")
	s.sendMenu(ctx, actor.ID)
}

func (s *Server) handleAdd(ctx context.Context, actorID int64, arg string) {
	if _, err := s.authorize(ctx, actorID, auth.CapabilityCustomer); err != nil {
		return
	}

	itemID, err := kernel.UUIDFromString(arg)
	if err != nil {
		s.reply(ctx, actorID, "That button has expired, open the menu again.")
		return
	}

	cmd, err := commands.NewAddCartItemCommand(actorID, itemID)
	if err != nil {
		s.logger.Error("build add command", "actor_id", actorID, "error", err)
		return
	}

	cart, err := s.addCartItemHandler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrItemUnavailable) {
			s.reply(ctx, actorID, "Sorry, that item is no longer available.")
			return
		}
		if errors.Is(err, errs.ErrPreconditionFailed) {
			s.reply(ctx, actorID, "Your cart expired. Open the menu to start a new one.")
			return
		}
		s.serverError(ctx, actorID, "add cart item", err)
		return
	}

	name := "item"
	if itm, ok := s.catalog.Find(ctx, itemID); ok {
		name = itm.Name()
	}
	s.reply(ctx, actorID, fmt.Sprintf("Added %s. Your cart total is %s.",
		name, cart.Total().StringFixed(2)))
}

func (s *Server) handleRemove(ctx context.Context, actorID int64, arg string) {
	if _, err := s.authorize(ctx, actorID, auth.CapabilityCustomer); err != nil {
		return
	}

	lineItemID, err := kernel.UUIDFromString(arg)
	if err != nil {
		s.reply(ctx, actorID, "That button has expired, open your cart again.")
		return
	}

	cmd, err := commands.NewRemoveCartItemCommand(actorID, lineItemID)
	if err != nil {
		s.logger.Error("build remove command", "actor_id", actorID, "error", err)
		return
	}

	if _, err = s.removeCartItem.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			s.reply(ctx, actorID, "That item is not in your cart anymore.")
			return
		}
		if errors.Is(err, errs.ErrPreconditionFailed) {
			s.reply(ctx, actorID, "Your cart expired. Open the menu to start a new one.")
			return
		}
		s.serverError(ctx, actorID, "remove cart item", err)
		return
	}

	s.sendCart(ctx, actorID)
}

func (s *Server) handleCheckout(ctx context.Context, actorID int64, arg string) {
	if _, err := s.authorize(ctx, actorID, auth.CapabilityCustomer); err != nil {
		return
	}

	station, err := order.StationFromString(arg)
	if err != nil {
		s.reply(ctx, actorID, "Pick a counter from your cart view.")
		return
	}

	cmd, err := commands.NewCheckoutCommand(actorID, station)
	if err != nil {
		s.logger.Error("build checkout command", "actor_id", actorID, "error", err)
		return
	}

	submitted, err := s.checkoutHandler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrEmptyCart) {
			s.reply(ctx, actorID, "Your cart is empty. Add something from the menu first.")
			return
		}
		s.serverError(ctx, actorID, "checkout", err)
		return
	}

	s.reply(ctx, actorID, fmt.Sprintf(
		"Order placed! The %s counter will let you know when it's ready. Total: %s.",
		submitted.Station(), submitted.Total().StringFixed(2)))
}

func (s *Server) handleClaim(ctx context.Context, actorID int64, arg string) {
	grant, err := s.authorize(ctx, actorID, auth.CapabilityOperator)
	if err != nil {
		return
	}

	orderID, err := kernel.UUIDFromString(arg)
	if err != nil {
		s.reply(ctx, actorID, "That order reference is no longer valid.")
		return
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, grant.Station())
	if err != nil {
		s.logger.Error("build claim command", "actor_id", actorID, "error", err)
		return
	}

	claimed, err := s.claimOrderHandler.Handle(ctx, cmd)
	if err != nil {
		s.replyTransitionFailure(ctx, actorID, "claim order", err)
		return
	}

	s.reply(ctx, actorID, fmt.Sprintf("Order is yours. Mark it ready when done (total %s).",
		claimed.Total().StringFixed(2)))
	s.replyActions(ctx, actorID, "Actions:", []ports.Action{
		{Label: "Mark ready", Data: "ready:" + claimed.ID().String()},
	})
}

func (s *Server) handleReady(ctx context.Context, actorID int64, arg string) {
	grant, err := s.authorize(ctx, actorID, auth.CapabilityOperator)
	if err != nil {
		return
	}

	orderID, err := kernel.UUIDFromString(arg)
	if err != nil {
		s.reply(ctx, actorID, "That order reference is no longer valid.")
		return
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID, grant.Station())
	if err != nil {
		s.logger.Error("build mark ready command", "actor_id", actorID, "error", err)
		return
	}

	ready, err := s.markReadyHandler.Handle(ctx, cmd)
	if err != nil {
		s.replyTransitionFailure(ctx, actorID, "mark order ready", err)
		return
	}

	s.reply(ctx, actorID, "Customer has been notified the order is ready.")
	s.replyActions(ctx, actorID, "When they pick it up:", []ports.Action{
		{Label: "Complete", Data: "done:" + ready.ID().String()},
	})
}

func (s *Server) handleComplete(ctx context.Context, actorID int64, arg string) {
	grant, err := s.authorize(ctx, actorID, auth.CapabilityOperator)
	if err != nil {
		return
	}

	orderID, err := kernel.UUIDFromString(arg)
	if err != nil {
		s.reply(ctx, actorID, "That order reference is no longer valid.")
		return
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, grant.Station())
	if err != nil {
		s.logger.Error("build complete command", "actor_id", actorID, "error", err)
		return
	}

	if _, err = s.completeHandler.Handle(ctx, cmd); err != nil {
		s.replyTransitionFailure(ctx, actorID, "complete order", err)
		return
	}

	s.reply(ctx, actorID, "Order closed. Thanks!")
}

// sendMenu is the first step of the two-step browse: it offers one button
// per category that currently has available items; picking one lists the
// items themselves.
func (s *Server) sendMenu(ctx context.Context, chatID int64) {
	items := s.catalog.ListAvailable(ctx)
	if len(items) == 0 {
		s.reply(ctx, chatID, "The menu is empty right now, check back soon.")
		return
	}

	present := make(map[item.Category]bool, len(items))
	for _, itm := range items {
		present[itm.Category()] = true
	}

	actions := make([]ports.Action, 0, len(present)+1)
	for _, c := range []item.Category{item.Popcorn, item.Drinks, item.CottonCandy, item.Other} {
		if present[c] {
			actions = append(actions, ports.Action{
				Label: categoryLabel(c),
				Data:  "cat:" + c.String(),
			})
		}
	}
	actions = append(actions, ports.Action{Label: "View cart", Data: "cart"})

	s.replyActions(ctx, chatID, "Here's what we have today:", actions)
}

func (s *Server) sendCategory(ctx context.Context, chatID int64, arg string) {
	category := item.CategoryFromString(arg)

	var actions []ports.Action
	for _, itm := range s.catalog.ListAvailable(ctx) {
		if itm.Category() != category {
			continue
		}
		actions = append(actions, ports.Action{
			Label: fmt.Sprintf("%s (%s)", itm.Name(), itm.Price().StringFixed(2)),
			Data:  "add:" + itm.ID().String(),
		})
	}
	if len(actions) == 0 {
		s.reply(ctx, chatID, "Nothing in that category right now.")
		return
	}

	actions = append(actions,
		ports.Action{Label: "Back to categories", Data: "menu"},
		ports.Action{Label: "View cart", Data: "cart"},
	)

	s.replyActions(ctx, chatID, categoryLabel(category)+":", actions)
}

func categoryLabel(c item.Category) string {
	switch c {
	case item.Popcorn:
		return "Popcorn"
	case item.Drinks:
		return "Drinks"
	case item.CottonCandy:
		return "Cotton candy"
	default:
		return "Other"
	}
}

func (s *Server) sendCart(ctx context.Context, chatID int64) {
	query, err := queries.NewGetCartQuery(chatID)
	if err != nil {
		s.logger.Error("build cart query", "actor_id", chatID, "error", err)
		return
	}

	cart, err := s.getCartHandler.Handle(ctx, query)
	if err != nil {
		s.serverError(ctx, chatID, "get cart", err)
		return
	}
	if cart == nil || len(cart.Lines) == 0 {
		s.reply(ctx, chatID, "Your cart is empty. Send /menu to add something.")
		return
	}

	var b strings.Builder
	b.WriteString("Your cart:\n")
	actions := make([]ports.Action, 0, len(cart.Lines)+2)
	for _, line := range cart.Lines {
		fmt.Fprintf(&b, "  %s x%d = %s\n", line.ItemName, line.Quantity, line.Subtotal.StringFixed(2))
		actions = append(actions, ports.Action{
			Label: "Remove " + line.ItemName,
			Data:  "rm:" + line.LineItemID.String(),
		})
	}
	fmt.Fprintf(&b, "Total: %s", cart.Total.StringFixed(2))

	actions = append(actions,
		ports.Action{Label: "Checkout at left counter", Data: "checkout:left"},
		ports.Action{Label: "Checkout at right counter", Data: "checkout:right"},
	)

	s.replyActions(ctx, chatID, b.String(), actions)
}

func (s *Server) sendHistory(ctx context.Context, chatID int64) {
	query, err := queries.NewGetOrderHistoryQuery(chatID, 0)
	if err != nil {
		s.logger.Error("build history query", "actor_id", chatID, "error", err)
		return
	}

	orders, err := s.getHistoryHandler.Handle(ctx, query)
	if err != nil {
		s.serverError(ctx, chatID, "get order history", err)
		return
	}
	if len(orders) == 0 {
		s.reply(ctx, chatID, "You haven't ordered anything yet.")
		return
	}

	var b strings.Builder
	b.WriteString("Your orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			o.CreatedAt.Format("Jan 2 15:04"), o.Status, o.Total.StringFixed(2))
	}

	active, err := s.activeOrderLine(ctx, chatID)
	if err == nil && active != "" {
		b.WriteString(active)
	}

	s.reply(ctx, chatID, b.String())
}

func (s *Server) activeOrderLine(ctx context.Context, chatID int64) (string, error) {
	query, err := queries.NewGetActiveOrderQuery(chatID)
	if err != nil {
		return "", err
	}

	active, err := s.getActiveHandler.Handle(ctx, query)
	if err != nil || active == nil {
		return "", err
	}

	return fmt.Sprintf("In progress: %s at the %s counter.", active.Status, active.Station), nil
}

func (s *Server) sendNewOrders(ctx context.Context, actorID int64) {
	grant, err := s.authorize(ctx, actorID, auth.CapabilityOperator)
	if err != nil {
		return
	}

	query, err := queries.NewGetNewOrdersQuery(grant.Station())
	if err != nil {
		s.logger.Error("build new orders query", "actor_id", actorID, "error", err)
		return
	}

	orders, err := s.getNewOrdersHandler.Handle(ctx, query)
	if err != nil {
		s.serverError(ctx, actorID, "get new orders", err)
		return
	}
	if len(orders) == 0 {
		s.reply(ctx, actorID, "No new orders for your counter.")
		return
	}

	for _, o := range orders {
		text := fmt.Sprintf("%s ordered %d item(s), total %s, at %s",
			o.CustomerName, o.ItemCount, o.Total.StringFixed(2), o.CreatedAt.Format("15:04"))
		s.replyActions(ctx, actorID, text, []ports.Action{
			{Label: "Take order", Data: "claim:" + o.OrderID.String()},
		})
	}
}

// authorize wraps the role gate and sends the one generic denial message on
// any failure, so callers just return on error.
func (s *Server) authorize(ctx context.Context, actorID int64, required auth.Capability) (auth.Grant, error) {
	grant, err := s.roleGate.Authorize(ctx, actorID, required)
	if err != nil {
		s.reply(ctx, actorID, "You can't do that. Send /start if you haven't yet.")
		return auth.Grant{}, err
	}
	return grant, nil
}

// replyTransitionFailure maps order transition errors to chat responses.
// A station mismatch gets the same wording as a plain denial.
func (s *Server) replyTransitionFailure(ctx context.Context, actorID int64, op string, err error) {
	switch {
	case errors.Is(err, commands.ErrAlreadyClaimed):
		s.reply(ctx, actorID, "Too late, a colleague already took that order.")
	case errors.Is(err, commands.ErrStationMismatch):
		s.reply(ctx, actorID, "You can't do that.")
	case errors.Is(err, errs.ErrObjectNotFound):
		s.reply(ctx, actorID, "That order doesn't exist anymore.")
	case errors.Is(err, errs.ErrInvalidTransition):
		s.reply(ctx, actorID, "That order has already moved on.")
	default:
		s.serverError(ctx, actorID, op, err)
	}
}

func (s *Server) serverError(ctx context.Context, actorID int64, op string, err error) {
	s.logger.Error(op+" failed", "actor_id", actorID, "error", err)
	s.reply(ctx, actorID, "Something went wrong, please try again.")
}

func (s *Server) reply(ctx context.Context, chatID int64, text string) {
	s.replyActions(ctx, chatID, text, nil)
}

func (s *Server) replyActions(ctx context.Context, chatID int64, text string, actions []ports.Action) {
	if err := s.messenger.SendMessage(ctx, chatID, text, actions); err != nil {
		s.logger.Warn("reply delivery failed", "chat_id", chatID, "error", err)
	}
}
