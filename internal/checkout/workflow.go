// Package checkout implements order submission from a cart: authorization,
// persistence, summary composition and hand-off to a messaging channel.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/identity"
	"github.com/polkiloo/storefront/internal/message"
	"github.com/polkiloo/storefront/internal/pricing"
)

// State is a step of a submission attempt.
type State string

const (
	StateIdle            State = "idle"
	StateAuthorizing     State = "authorizing"
	StatePersistingOrder State = "persisting_order"
	StateComposing       State = "composing_message"
	StateHandingOff      State = "handing_off"
	StateCleared         State = "cleared"
	StateFailed          State = "failed"
)

var errCannotOpen = errors.New("link cannot be opened")

// OrderBackend persists submitted orders.
type OrderBackend interface {
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
}

// OrderHistory mirrors submitted orders for the order history view.
type OrderHistory interface {
	Record(order model.Order)
}

// Metrics counts state transitions and submission outcomes.
type Metrics interface {
	Transition(from, to string)
	Submission(channel, outcome string)
}

type nopMetrics struct{}

func (nopMetrics) Transition(string, string) {}
func (nopMetrics) Submission(string, string) {}

// Submission is a single attempt to order the contents of a cart.
type Submission struct {
	CartID          string
	Cart            repository.CartRepository
	Gate            identity.Gate
	Opener          LinkOpener
	Channel         model.Channel
	DeliveryAddress string
	Notes           string
}

// Result describes a completed submission.
type Result struct {
	Order   *model.Order
	Link    string
	Message string
	Totals  pricing.Totals
	State   State
	Notice  string
}

// SubmitError reports a failed submission with the state it failed in.
// Order is set when the order was persisted before the failure.
type SubmitError struct {
	State    State
	Channel  model.Channel
	Redirect string
	Order    *model.Order
	Err      error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("checkout failed in %s: %v", e.State, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Notice returns the message shown to the customer.
func (e *SubmitError) Notice() string {
	switch {
	case errors.Is(e.Err, domainErrors.ErrNotAuthenticated):
		return "Sipariş vermek için lütfen giriş yapın"
	case errors.Is(e.Err, domainErrors.ErrEmptyCart):
		return "Listenizde henüz ürün bulunmuyor"
	case errors.Is(e.Err, domainErrors.ErrSubmissionInProgress):
		return "Siparişiniz zaten gönderiliyor"
	case errors.Is(e.Err, domainErrors.ErrChannelUnavailable):
		if e.Channel == model.ChannelChat {
			return "WhatsApp uygulaması bulunamadı"
		}
		return "E-posta uygulaması bulunamadı"
	case errors.Is(e.Err, domainErrors.ErrUnknownChannel):
		return "Geçersiz gönderim kanalı"
	}
	return "Sipariş oluşturulurken bir hata oluştu"
}

func successNotice(c model.Channel) string {
	if c == model.ChannelChat {
		return "Sipariş oluşturuldu ve WhatsApp açıldı!"
	}
	return "Sipariş oluşturuldu ve e-posta uygulamanız açıldı!"
}

// Workflow runs submissions. A cart can have at most one submission in flight.
type Workflow struct {
	orders       OrderBackend
	history      OrderHistory
	destinations message.Destinations
	logger       *slog.Logger
	metrics      Metrics

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewWorkflow constructs a workflow. history and metrics may be nil.
func NewWorkflow(orders OrderBackend, history OrderHistory, destinations message.Destinations, logger *slog.Logger, metrics Metrics) *Workflow {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Workflow{
		orders:       orders,
		history:      history,
		destinations: destinations,
		logger:       logger,
		metrics:      metrics,
		inFlight:     make(map[string]struct{}),
	}
}

// Submit runs the submission chain to completion or failure.
func (w *Workflow) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if !sub.Channel.Valid() {
		w.metrics.Submission(string(sub.Channel), "rejected")
		return nil, &SubmitError{State: StateIdle, Channel: sub.Channel, Err: domainErrors.ErrUnknownChannel}
	}
	if !w.acquire(sub.CartID) {
		w.metrics.Submission(string(sub.Channel), "in_progress")
		return nil, &SubmitError{State: StateIdle, Channel: sub.Channel, Err: domainErrors.ErrSubmissionInProgress}
	}
	defer w.release(sub.CartID)

	run := &attempt{w: w, sub: sub, state: StateIdle}
	res, err := run.execute(ctx)
	if err != nil {
		w.metrics.Submission(string(sub.Channel), "failed")
		return nil, err
	}
	w.metrics.Submission(string(sub.Channel), "succeeded")
	return res, nil
}

func (w *Workflow) acquire(cartID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[cartID]; busy {
		return false
	}
	w.inFlight[cartID] = struct{}{}
	return true
}

func (w *Workflow) release(cartID string) {
	w.mu.Lock()
	delete(w.inFlight, cartID)
	w.mu.Unlock()
}

type attempt struct {
	w     *Workflow
	sub   Submission
	state State
	order *model.Order
}

func (a *attempt) to(next State) {
	a.w.logger.Debug("checkout transition",
		slog.String("cart", a.sub.CartID),
		slog.String("from", string(a.state)),
		slog.String("to", string(next)),
	)
	a.w.metrics.Transition(string(a.state), string(next))
	a.state = next
}

func (a *attempt) fail(err error, redirect string) error {
	failedIn := a.state
	a.to(StateFailed)
	a.w.logger.Warn("checkout failed",
		slog.String("cart", a.sub.CartID),
		slog.String("state", string(failedIn)),
		slog.String("channel", string(a.sub.Channel)),
		slog.String("error", err.Error()),
	)
	a.to(StateIdle)
	return &SubmitError{State: failedIn, Channel: a.sub.Channel, Redirect: redirect, Order: a.order, Err: err}
}

func (a *attempt) execute(ctx context.Context) (*Result, error) {
	a.to(StateAuthorizing)
	if a.sub.Gate == nil || !a.sub.Gate.IsAuthenticated() {
		return nil, a.fail(domainErrors.ErrNotAuthenticated, identity.LoginRedirect)
	}
	user, ok := a.sub.Gate.CurrentUser()
	if !ok {
		return nil, a.fail(domainErrors.ErrNotAuthenticated, identity.LoginRedirect)
	}
	lines := a.sub.Cart.Lines()
	if len(lines) == 0 {
		return nil, a.fail(domainErrors.ErrEmptyCart, "")
	}

	a.to(StatePersistingOrder)
	totals := pricing.Calculate(lines)
	order, err := a.w.orders.CreateOrder(ctx, newDraft(user, lines, totals, a.sub))
	if err != nil {
		return nil, a.fail(fmt.Errorf("%w: %w", domainErrors.ErrOrderPersistence, err), "")
	}
	a.order = mirrorOrder(order, user, lines, totals)
	if a.w.history != nil {
		a.w.history.Record(*a.order)
	}

	a.to(StateComposing)
	body := message.Compose(message.Summary{Customer: user, Lines: lines, Totals: totals}, message.StyleFor(a.sub.Channel))

	a.to(StateHandingOff)
	link := a.w.destinations.Link(a.sub.Channel, body)
	if a.sub.Opener == nil || !a.sub.Opener.CanOpen(link) {
		return nil, a.fail(domainErrors.ErrChannelUnavailable, "")
	}
	if err := a.sub.Opener.Open(ctx, link); err != nil {
		return nil, a.fail(fmt.Errorf("%w: %w", domainErrors.ErrChannelUnavailable, err), "")
	}

	a.to(StateCleared)
	a.sub.Cart.Subtract(lines)
	a.w.logger.Info("order submitted",
		slog.String("order", a.order.ID),
		slog.String("channel", string(a.sub.Channel)),
		slog.String("total", pricing.FormatAmount(totals.Gross)),
	)
	a.to(StateIdle)

	return &Result{
		Order:   a.order,
		Link:    link,
		Message: body,
		Totals:  totals,
		State:   StateCleared,
		Notice:  successNotice(a.sub.Channel),
	}, nil
}

func newDraft(user model.UserProfile, lines []model.CartLine, totals pricing.Totals, sub Submission) model.OrderDraft {
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			VATRate:   line.VATRate,
		})
	}
	return model.OrderDraft{
		UserID:          user.ID,
		Items:           items,
		Total:           totals.Gross,
		DeliveryAddress: sub.DeliveryAddress,
		Notes:           sub.Notes,
	}
}

// mirrorOrder completes the backend response with the submission snapshot
// kept in the local history.
func mirrorOrder(order *model.Order, user model.UserProfile, lines []model.CartLine, totals pricing.Totals) *model.Order {
	mirrored := *order
	mirrored.UserID = user.ID
	mirrored.UserEmail = user.Email
	mirrored.UserName = user.FullName
	mirrored.Status = model.OrderStatusPending
	if mirrored.Total.IsZero() {
		mirrored.Total = totals.Gross
	}
	if len(mirrored.Items) == 0 {
		mirrored.Items = newDraft(user, lines, totals, Submission{}).Items
	}
	return &mirrored
}
