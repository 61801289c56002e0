package client

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gridboard/mobile-core/internal/adapter"
	"github.com/gridboard/mobile-core/internal/config"
	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/internal/netwatch"
	"github.com/gridboard/mobile-core/internal/service"
	"github.com/gridboard/mobile-core/internal/store"
)

type App struct {
	services *service.ClientServices
	watcher  *netwatch.Watcher
	logger   *logger.Logger
}

// NewApp wires the full client stack from cfg: local cache, backend
// gateway, connectivity watcher and the session service on top.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	gateway, err := adapter.NewHTTPBackendGateway(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create backend gateway: %w", err)
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	watcher := netwatch.NewWatcher(gateway.Ping, cfg.Watcher, log)
	services := service.NewClientServices(storages, gateway, watcher, log)

	return &App{services: services, watcher: watcher, logger: log}, nil
}

// Run restores the session, starts the background machinery and enters the
// command loop until EOF or quit.
func (a *App) Run() error {
	ctx := context.Background()

	a.watcher.Start(ctx)
	defer a.watcher.Stop()

	session := a.services.Session
	session.Restore(ctx)
	session.Start(ctx)
	defer session.Stop()

	a.printStatus()
	fmt.Println(`type "help" for commands`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if quit := a.dispatch(ctx, fields[0], fields[1:]); quit {
			return nil
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) (quit bool) {
	session := a.services.Session

	switch cmd {
	case "quit", "exit":
		return true

	case "help":
		printHelp()

	case "status":
		a.printStatus()

	case "login":
		if len(args) != 2 {
			fmt.Println("usage: login <email> <password>")
			return false
		}
		a.report(session.Login(ctx, args[0], args[1]))

	case "register":
		if len(args) < 2 {
			fmt.Println("usage: register <email> <password> [name]")
			return false
		}
		name := strings.Join(args[2:], " ")
		a.report(session.Register(ctx, args[0], args[1], name))

	case "logout":
		session.Logout(ctx)
		fmt.Println("signed out")

	case "refresh":
		a.report(session.RefreshUser(ctx))

	case "retry":
		session.RetryConnection(ctx)
		a.printStatus()

	case "upgrade":
		if len(args) < 2 {
			fmt.Println("usage: upgrade <tier> <payment-method> [reference]")
			return false
		}
		var ref string
		if len(args) > 2 {
			ref = args[2]
		}
		a.report(session.UpgradeSubscription(ctx, args[0], args[1], ref))

	case "quota":
		fmt.Printf("max elements: %d\n", session.MaxElements())

	case "feature":
		if len(args) != 1 {
			fmt.Println("usage: feature <name>")
			return false
		}
		fmt.Printf("%s available: %v\n", args[0], session.FeatureAvailable(args[0]))

	case "methods":
		methods := session.PaymentMethods()
		if len(methods) == 0 {
			fmt.Println("no payment methods known yet")
			return false
		}
		for _, m := range methods {
			fmt.Printf("  %s\t%s\n", m.ID, m.Name)
		}

	default:
		fmt.Printf("unknown command %q\n", cmd)
	}

	return false
}

// report prints the outcome of a session operation using the centralized
// user-facing wording.
func (a *App) report(err error) {
	if err != nil {
		fmt.Println(service.UserMessage(err))
		return
	}
	fmt.Println("ok")
	a.printStatus()
}

func (a *App) printStatus() {
	snap := a.services.Session.Session()

	online := "offline"
	if snap.IsOnline {
		online = "online"
	}

	if !snap.Authenticated() {
		fmt.Printf("[%s] not signed in\n", online)
		return
	}

	fmt.Printf("[%s] %s (%s) tier=%s quota=%d\n",
		online, snap.User.Name, snap.User.Email,
		snap.User.SubscriptionTier, a.services.Session.MaxElements())
}

func printHelp() {
	fmt.Println(`commands:
  status                               show session and connectivity state
  login <email> <password>             sign in
  register <email> <password> [name]   create an account
  logout                               sign out and clear cached session
  refresh                              re-fetch the user record
  retry                                re-attempt catalog load and validation
  upgrade <tier> <method> [reference]  change subscription tier
  quota                                show the element quota
  feature <name>                       check feature availability
  methods                              list known payment methods
  quit`)
}
