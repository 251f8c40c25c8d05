package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/coinharbor/cryptobot/internal/bot"
	"github.com/coinharbor/cryptobot/internal/config"
	"github.com/coinharbor/cryptobot/internal/exchange"
	"github.com/coinharbor/cryptobot/internal/exchange/kraken"
	"github.com/coinharbor/cryptobot/internal/monitor"
	"github.com/coinharbor/cryptobot/internal/notify"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "cryptobot",
		Usage:   "place one limit buy order per run and report open and closed orders",
		Version: fmt.Sprintf("%s (build: %s, commit: %s)", Version, BuildTime, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  config.FlagTradingPlatformName,
				Usage: "trading platform to use (currently only \"kraken\")",
			},
			&cli.StringFlag{
				Name:  config.FlagTradingPlatformKey,
				Usage: "public API key (or CRYPTOBOT_TRADING_PLATFORM_KEY)",
			},
			&cli.StringFlag{
				Name:  config.FlagTradingPlatformSecret,
				Usage: "shared secret for request signing (or CRYPTOBOT_TRADING_PLATFORM_SECRET)",
			},
			&cli.StringFlag{
				Name:  config.FlagBaseCurrency,
				Usage: "3-letter label of the currency to buy, e.g. BTC",
			},
			&cli.StringFlag{
				Name:  config.FlagQuoteCurrency,
				Usage: "3-letter label of the currency to pay with, e.g. EUR",
			},
			&cli.StringFlag{
				Name: config.FlagVolumePerRun,
				Usage: "amount to invest per run; despite the historical flag name, " +
					"this is a QUOTE-currency amount (it is compared against the quote " +
					"balance and converted to base volume at the limit price)",
			},
			&cli.StringFlag{
				Name:  config.FlagOffsetRatio,
				Usage: "offset of the limit price below the bid price, decimal in [0, 1)",
			},
			&cli.StringFlag{
				Name:  config.FlagSlackWebhookURL,
				Usage: "Slack inbound webhook for run reports; omit to suppress notifications",
			},
			&cli.StringFlag{
				Name:  config.FlagLogLevel,
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		HideHelpCommand: true,
		Action:          run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return err
	}

	logger := monitor.NewLogger(cfg.LogLevel)

	// One HTTP client for the whole run: exchange and webhook share
	// connections, a 10 s connect timeout and a 30 s overall timeout.
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		},
	}

	registry := exchange.NewRegistry()
	if cfg.PlatformName == kraken.PlatformName {
		client := kraken.NewClient(kraken.ClientConfig{
			APIKey:     cfg.PlatformKey,
			Secret:     cfg.PlatformSecret,
			HTTPClient: httpClient,
			Logger:     logger,
		})
		registry.Register(kraken.PlatformName, kraken.NewPublicFacade(client), kraken.NewPrivateFacade(client))
	}

	sink := notify.NewSink(httpClient, cfg.SlackWebhookURL, logger)
	logic := bot.New(registry, sink, logger)
	ctx := context.Background()

	if err := runOnce(ctx, logic, cfg); err != nil {
		diagnostic := fmt.Sprintf("%v\n%s", err, debug.Stack())
		fmt.Fprintln(os.Stderr, diagnostic)

		// Best effort: a sink failure must not mask the original cause.
		notification := "Exception: " + monitor.Truncate(diagnostic, 512)
		if notifyErr := sink.Send(ctx, notification); notifyErr != nil {
			logger.Warnf("could not report the failure to the webhook: %v", notifyErr)
		}

		return cli.Exit("", 1)
	}

	return nil
}

// runOnce performs the bounded sequence of one run: place a buy if the
// balance allows, then report open orders, then closed ones. The first
// failure aborts the remainder.
func runOnce(ctx context.Context, logic *bot.Logic, cfg *config.Config) error {
	if err := logic.PlaceBuyIfEnoughAvailable(
		ctx,
		cfg.PlatformName,
		cfg.VolumeInQuotePerRun,
		cfg.BaseCurrency,
		cfg.QuoteCurrency,
		cfg.OffsetRatio,
	); err != nil {
		return err
	}

	if err := logic.ReportOpenOrders(ctx, cfg.PlatformName); err != nil {
		return err
	}

	return logic.ReportClosedOrders(ctx, cfg.PlatformName)
}
