package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parkease/parking-console/internal/console"
	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
	"github.com/parkease/parking-console/internal/core/service"
	"github.com/parkease/parking-console/internal/infrastructure/gateway"
	"github.com/parkease/parking-console/internal/infrastructure/store"
	"github.com/parkease/parking-console/internal/ops"
	"github.com/parkease/parking-console/internal/pkg/config"
	"github.com/parkease/parking-console/pkg/logger"
)

const usage = `parkease <command> [flags]

Session:
  login      -u <username> -p <password>
  register   -u <username> -p <password> -name <full name> -email <email> -phone <phone>
  logout
  whoami

Customer:
  slots      [-filter ALL|AVAILABLE|OCCUPIED|UNAVAILABLE]
  bookings
  park       -plate <plate> -type BIKE|CAR|SUV|TRUCK -owner <name> -phone <phone>
  checkout   -booking <id>

Admin:
  all-bookings
  users
  report       [-from YYYY-MM-DD] [-to YYYY-MM-DD]
  slot-add     -number <slot> -floor <n> -type SMALL|MEDIUM|LARGE
  slot-update  -id <id> -number <slot> -floor <n> -type SMALL|MEDIUM|LARGE
  slot-remove  -id <id>
  search       -plate <plate>
  remove-vehicle -plate <plate>

Live:
  watch
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SessionBackend).Msg("session store unavailable")
	}

	nav := console.NewNavigator()
	notifier := console.NewNotifier()

	var app *console.App
	gw := gateway.New(gateway.Options{
		BaseURL:      cfg.APIURL,
		Store:        sessionStore,
		CurrentRoute: nav.Current,
		OnForcedLogout: func(route domain.Route) {
			app.ForcedLogout(route)
		},
		Logger: log,
	})

	auth := gateway.NewAuthAPI(gw)
	app = console.NewApp(console.AppOptions{
		Navigator: nav,
		Notifier:  notifier,
		Sessions:  service.NewSessionService(sessionStore, auth, log),
		Parking:   gateway.NewParkingAPI(gw),
		Admin:     gateway.NewAdminAPI(gw),
		Auth:      auth,
		Logger:    log,
		Out:       os.Stdout,
	})

	if err := run(ctx, app, cfg, os.Args[1], os.Args[2:]); err != nil {
		exitErr(err)
	}
}

func run(ctx context.Context, app *console.App, cfg *config.Config, command string, args []string) error {
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("u", "", "username")
		password := fs.String("p", "", "password")
		mustParse(fs, args)
		return app.Login(ctx, *username, *password)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		reg := ports.Registration{}
		fs.StringVar(&reg.Username, "u", "", "username")
		fs.StringVar(&reg.Password, "p", "", "password")
		fs.StringVar(&reg.FullName, "name", "", "full name")
		fs.StringVar(&reg.Email, "email", "", "email address")
		fs.StringVar(&reg.PhoneNumber, "phone", "", "phone number")
		mustParse(fs, args)
		return app.Register(ctx, reg)

	case "logout":
		return app.Logout(ctx)

	case "whoami":
		return app.Whoami(ctx)

	case "slots":
		fs := flag.NewFlagSet("slots", flag.ExitOnError)
		filter := fs.String("filter", string(domain.FilterAll), "ALL, AVAILABLE, OCCUPIED or UNAVAILABLE")
		mustParse(fs, args)
		return app.Slots(ctx, domain.SlotFilter(*filter))

	case "bookings":
		return app.MyBookings(ctx)

	case "park":
		fs := flag.NewFlagSet("park", flag.ExitOnError)
		in := ports.ParkInput{}
		fs.StringVar(&in.LicensePlate, "plate", "", "license plate")
		vtype := fs.String("type", "", "BIKE, CAR, SUV or TRUCK")
		fs.StringVar(&in.OwnerName, "owner", "", "owner name")
		fs.StringVar(&in.PhoneNumber, "phone", "", "owner phone number")
		mustParse(fs, args)
		in.VehicleType = domain.VehicleType(*vtype)
		return app.Park(ctx, in)

	case "checkout":
		fs := flag.NewFlagSet("checkout", flag.ExitOnError)
		bookingID := fs.Int64("booking", 0, "booking id")
		mustParse(fs, args)
		return app.Checkout(ctx, *bookingID)

	case "all-bookings":
		return app.AllBookings(ctx)

	case "users":
		return app.Users(ctx)

	case "report":
		fs := flag.NewFlagSet("report", flag.ExitOnError)
		from := fs.String("from", "", "start date, YYYY-MM-DD")
		to := fs.String("to", "", "end date, YYYY-MM-DD")
		mustParse(fs, args)
		fromDate, toDate, err := reportRange(*from, *to)
		if err != nil {
			return err
		}
		return app.Report(ctx, fromDate, toDate)

	case "slot-add":
		fs := flag.NewFlagSet("slot-add", flag.ExitOnError)
		in := ports.SlotInput{}
		fs.StringVar(&in.SlotNumber, "number", "", "slot number, e.g. A-12")
		fs.IntVar(&in.FloorNumber, "floor", 0, "floor number")
		stype := fs.String("type", "", "SMALL, MEDIUM or LARGE")
		mustParse(fs, args)
		in.SlotType = domain.SlotType(*stype)
		return app.AddSlot(ctx, in)

	case "slot-update":
		fs := flag.NewFlagSet("slot-update", flag.ExitOnError)
		id := fs.Int64("id", 0, "slot id")
		in := ports.SlotInput{}
		fs.StringVar(&in.SlotNumber, "number", "", "slot number")
		fs.IntVar(&in.FloorNumber, "floor", 0, "floor number")
		stype := fs.String("type", "", "SMALL, MEDIUM or LARGE")
		mustParse(fs, args)
		in.SlotType = domain.SlotType(*stype)
		return app.UpdateSlot(ctx, *id, in)

	case "slot-remove":
		fs := flag.NewFlagSet("slot-remove", flag.ExitOnError)
		id := fs.Int64("id", 0, "slot id")
		mustParse(fs, args)
		return app.RemoveSlot(ctx, *id)

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		plate := fs.String("plate", "", "license plate")
		mustParse(fs, args)
		return app.Search(ctx, *plate)

	case "remove-vehicle":
		fs := flag.NewFlagSet("remove-vehicle", flag.ExitOnError)
		plate := fs.String("plate", "", "license plate")
		mustParse(fs, args)
		return app.RemoveVehicle(ctx, *plate)

	case "watch":
		// Watch mode also serves liveness and Prometheus metrics.
		e := ops.NewServer()
		go ops.Run(ctx, e, cfg.OpsAddr, logger.Get())
		return app.Watch(ctx, cfg.PollInterval, cfg.ClockInterval)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, error) {
	switch cfg.SessionBackend {
	case "file", "":
		path := cfg.SessionFile
		if path == "" {
			var err error
			path, err = store.DefaultSessionPath()
			if err != nil {
				return nil, err
			}
		}
		return store.NewFileStore(path), nil
	case "redis":
		client, err := store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// reportRange defaults to the current calendar month.
func reportRange(from, to string) (time.Time, time.Time, error) {
	now := time.Now()
	fromDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	toDate := fromDate.AddDate(0, 1, -1)

	var err error
	if from != "" {
		if fromDate, err = time.Parse("2006-01-02", from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if to != "" {
		if toDate, err = time.Parse("2006-01-02", to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date: %w", err)
		}
	}
	return fromDate, toDate, nil
}

func mustParse(fs *flag.FlagSet, args []string) {
	_ = fs.Parse(args) // ExitOnError: Parse never returns an error
}

func exitErr(err error) {
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(os.Stderr, "Error:", apiErr.Message)
	case service.IsValidationError(err):
		fmt.Fprintln(os.Stderr, "Invalid input:", err)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}
