// Package console is the presentation layer: it maps commands to guarded
// views, renders snapshots, and owns the watch-mode dashboard loop. It never
// writes session state itself; that discipline belongs to the session
// service and the gateway's 401 handler.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
	"github.com/parkease/parking-console/internal/core/service"
	"github.com/parkease/parking-console/internal/poll"
)

var errNotLoggedIn = errors.New("not logged in, run: parkease login")
var errWrongRole = errors.New("this view is not available for your role")

// App wires the session service, the backend APIs, and the renderer into
// the command surface exposed by cmd/parkease.
type App struct {
	nav      *Navigator
	notifier *Notifier
	sessions *service.SessionService
	parking  ports.ParkingAPI
	admin    ports.AdminAPI
	auth     ports.AuthAPI
	logger   zerolog.Logger
	out      io.Writer
}

type AppOptions struct {
	Navigator *Navigator
	Notifier  *Notifier
	Sessions  *service.SessionService
	Parking   ports.ParkingAPI
	Admin     ports.AdminAPI
	Auth      ports.AuthAPI
	Logger    zerolog.Logger
	Out       io.Writer
}

func NewApp(opts AppOptions) *App {
	return &App{
		nav:      opts.Navigator,
		notifier: opts.Notifier,
		sessions: opts.Sessions,
		parking:  opts.Parking,
		admin:    opts.Admin,
		auth:     opts.Auth,
		logger:   opts.Logger,
		out:      opts.Out,
	}
}

// ForcedLogout is handed to the gateway as its 401 redirect signal.
func (a *App) ForcedLogout(route domain.Route) {
	a.nav.Go(route)
	a.notifier.Info("session expired, please log in again")
	fmt.Fprintln(a.out, "Session expired, please log in again.")
}

// guard re-evaluates the route guard for every navigation into target.
func (a *App) guard(ctx context.Context, target domain.Route, allowedRoles ...string) error {
	session := a.sessions.Current(ctx)
	decision, redirect := service.Evaluate(session, allowedRoles)
	switch decision {
	case service.Unauthenticated:
		a.nav.Go(redirect)
		return errNotLoggedIn
	case service.AuthorizedWrongRole:
		// The default route resolves to the role's own landing view.
		if redirect == domain.RouteDefault {
			redirect = domain.LandingRoute(session.User.Role)
		}
		a.nav.Go(redirect)
		return errWrongRole
	}
	a.nav.Go(target)
	return nil
}

// Session commands.

func (a *App) Login(ctx context.Context, username, password string) error {
	a.nav.Go(domain.RouteLogin)
	session, err := a.sessions.Login(ctx, ports.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	landing := domain.LandingRoute(session.User.Role)
	a.nav.Go(landing)
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", session.User.Username, session.User.Role)
	return nil
}

func (a *App) Register(ctx context.Context, reg ports.Registration) error {
	a.nav.Go(domain.RouteLogin)
	session, err := a.sessions.Register(ctx, reg)
	if err != nil {
		return err
	}
	a.nav.Go(domain.LandingRoute(session.User.Role))
	fmt.Fprintf(a.out, "Registered %s (%s)\n", session.User.Username, session.User.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	route, err := a.sessions.Logout(ctx)
	if err != nil {
		return err
	}
	a.nav.Go(route)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	session := a.sessions.Current(ctx)
	if !session.Authenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s), role %s\n", session.User.Username, session.User.Email, session.User.Role)
	if info, err := service.InspectToken(session.Token); err == nil && !info.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Token expires %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Customer views.

func (a *App) Slots(ctx context.Context, filter domain.SlotFilter) error {
	if err := a.guard(ctx, domain.RouteCustomerHome); err != nil {
		return err
	}
	slots, err := a.parking.ListSlots(ctx)
	if err != nil {
		return err
	}
	RenderSlots(a.out, slots, filter)
	return nil
}

func (a *App) MyBookings(ctx context.Context) error {
	if err := a.guard(ctx, domain.RouteCustomerHome, domain.RoleCustomer); err != nil {
		return err
	}
	session := a.sessions.Current(ctx)
	bookings, err := a.parking.UserBookings(ctx, session.User.ID)
	if err != nil {
		return err
	}
	RenderBookings(a.out, bookings, time.Now())
	return nil
}

func (a *App) Park(ctx context.Context, input ports.ParkInput) error {
	if err := a.guard(ctx, domain.RouteCustomerHome, domain.RoleCustomer); err != nil {
		return err
	}
	// Validation failures stay local; nothing is dispatched.
	if err := service.CheckInput(input); err != nil {
		return err
	}
	booking, err := a.parking.Park(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vehicle %s parked, booking %s, slot %s\n",
		booking.Vehicle.LicensePlate, booking.BookingNumber, bookingSlot(*booking))
	return nil
}

func (a *App) Checkout(ctx context.Context, bookingID int64) error {
	if err := a.guard(ctx, domain.RouteCustomerHome, domain.RoleCustomer); err != nil {
		return err
	}
	booking, err := a.parking.Checkout(ctx, bookingID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Checked out %s, total %.2f (%s)\n",
		booking.Vehicle.LicensePlate, booking.TotalAmount, booking.PaymentStatus)
	return nil
}

// Admin views.

func (a *App) AllBookings(ctx context.Context) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	bookings, err := a.parking.ListBookings(ctx)
	if err != nil {
		return err
	}
	RenderBookings(a.out, bookings, time.Now())
	return nil
}

func (a *App) Users(ctx context.Context) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	users, err := a.auth.ListUsers(ctx)
	if err != nil {
		return err
	}
	RenderUsers(a.out, users)
	return nil
}

func (a *App) Report(ctx context.Context, from, to time.Time) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	report, err := a.admin.UsageReport(ctx, from, to)
	if err != nil {
		return err
	}
	RenderReport(a.out, *report)
	return nil
}

func (a *App) AddSlot(ctx context.Context, input ports.SlotInput) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	if err := service.CheckInput(input); err != nil {
		return err
	}
	slot, err := a.parking.CreateSlot(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Slot %s created (id %d)\n", slot.SlotNumber, slot.ID)
	return nil
}

func (a *App) UpdateSlot(ctx context.Context, id int64, input ports.SlotInput) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	if err := service.CheckInput(input); err != nil {
		return err
	}
	slot, err := a.parking.UpdateSlot(ctx, id, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Slot %s updated\n", slot.SlotNumber)
	return nil
}

func (a *App) RemoveSlot(ctx context.Context, id int64) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	if err := a.parking.DeleteSlot(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Slot %d removed\n", id)
	return nil
}

func (a *App) Search(ctx context.Context, plate string) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	booking, err := a.parking.SearchVehicle(ctx, plate)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintf(a.out, "No vehicle found for plate %s\n", plate)
			return nil
		}
		return err
	}
	RenderBookings(a.out, []domain.Booking{*booking}, time.Now())
	return nil
}

func (a *App) RemoveVehicle(ctx context.Context, plate string) error {
	if err := a.guard(ctx, domain.RouteAdminHome, domain.RoleAdmin); err != nil {
		return err
	}
	if err := a.parking.RemoveVehicle(ctx, plate); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vehicle %s removed\n", plate)
	return nil
}

// Watch mode.

// watchState holds the latest snapshots. Pollers replace them wholesale; the
// dashboard clock reads them for rendering.
type watchState struct {
	mu        sync.Mutex
	slots     []domain.ParkingSlot
	bookings  []domain.Booking
	report    *domain.UsageReport
	updatedAt time.Time
}

// Watch runs the live dashboard until ctx is cancelled. Customers see the
// slot grid and their own bookings; admins additionally see every booking
// and the usage report. Slow fetches never block the render clock.
func (a *App) Watch(ctx context.Context, pollInterval, clockInterval time.Duration) error {
	session := a.sessions.Current(ctx)
	if !session.Authenticated() {
		a.nav.Go(domain.RouteLogin)
		return errNotLoggedIn
	}
	if err := a.guard(ctx, domain.LandingRoute(session.User.Role)); err != nil {
		return err
	}

	state := &watchState{}

	slotsPoller := poll.Start(ctx, poll.Config[[]domain.ParkingSlot]{
		Resource: "slots",
		Interval: pollInterval,
		Fetch:    a.parking.ListSlots,
		Reconcile: func(slots []domain.ParkingSlot) {
			state.mu.Lock()
			state.slots = slots
			state.updatedAt = time.Now()
			state.mu.Unlock()
		},
		Count:    func(s []domain.ParkingSlot) int { return len(s) },
		Notifier: a.notifier,
		Logger:   a.logger,
	})
	defer slotsPoller.Stop()

	bookingsPoller := a.startBookingsPoller(ctx, session, state, pollInterval)
	defer bookingsPoller.Stop()

	var reportPoller *poll.Poller[*domain.UsageReport]
	if session.IsAdmin() {
		year := time.Now().Year()
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		reportPoller = poll.Start(ctx, poll.Config[*domain.UsageReport]{
			Resource: "report",
			Interval: pollInterval,
			Fetch: func(ctx context.Context) (*domain.UsageReport, error) {
				return a.admin.UsageReport(ctx, from, to)
			},
			Reconcile: func(r *domain.UsageReport) {
				state.mu.Lock()
				state.report = r
				state.mu.Unlock()
			},
			Notifier: a.notifier,
			Logger:   a.logger,
		})
		defer reportPoller.Stop()
	}

	// Separate one-second clock for live elapsed durations, independent of
	// the fetch interval.
	clock := poll.StartClock(ctx, clockInterval, func(now time.Time) {
		a.renderDashboard(state, now)
	})
	defer clock.Stop()

	<-ctx.Done()
	return nil
}

func (a *App) startBookingsPoller(ctx context.Context, session *domain.Session, state *watchState, interval time.Duration) *poll.Poller[[]domain.Booking] {
	resource := "bookings"
	fetch := func(ctx context.Context) ([]domain.Booking, error) {
		return a.parking.UserBookings(ctx, session.User.ID)
	}
	if session.IsAdmin() {
		resource = "all_bookings"
		fetch = a.parking.ListBookings
	}
	return poll.Start(ctx, poll.Config[[]domain.Booking]{
		Resource:  resource,
		Interval:  interval,
		Fetch:     fetch,
		Reconcile: func(b []domain.Booking) { state.mu.Lock(); state.bookings = b; state.mu.Unlock() },
		Count:     func(b []domain.Booking) int { return len(b) },
		Notifier:  a.notifier,
		Logger:    a.logger,
	})
}

func (a *App) renderDashboard(state *watchState, now time.Time) {
	state.mu.Lock()
	slots := state.slots
	bookings := state.bookings
	report := state.report
	updatedAt := state.updatedAt
	state.mu.Unlock()

	// ANSI clear-and-home; the dashboard repaints in place.
	fmt.Fprint(a.out, "\033[2J\033[H")
	fmt.Fprintf(a.out, "ParkEase live (updated %s)\n", updatedAt.Format("15:04:05"))
	if msg, isError, ok := a.notifier.Current(); ok {
		prefix := "notice"
		if isError {
			prefix = "error"
		}
		fmt.Fprintf(a.out, "[%s] %s\n", prefix, msg)
	}
	fmt.Fprintln(a.out)

	RenderSlots(a.out, slots, domain.FilterAll)
	fmt.Fprintln(a.out)
	RenderBookings(a.out, bookings, now)
	if report != nil {
		fmt.Fprintln(a.out)
		RenderReport(a.out, *report)
	}
}
