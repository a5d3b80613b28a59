package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/whitesvil1-lab/JustCani/internal/app"
	"github.com/whitesvil1-lab/JustCani/internal/config"
	"github.com/whitesvil1-lab/JustCani/internal/model"
)

// errFailed команда выполнена, но операция не удалась (сообщение уже показано)
var errFailed = cli.Exit("", 1)

// withApp загружает конфигурацию, собирает приложение и освобождает его после команды
func withApp(fn func(ctx context.Context, a *app.App, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		a, err := app.Build(c.Context, cfg)
		if err != nil {
			return fmt.Errorf("failed to build app: %w", err)
		}
		defer a.Close()

		return fn(c.Context, a, c)
	}
}

// result переводит bool результат операции в код выхода
func result(ok bool) error {
	if !ok {
		return errFailed
	}
	return nil
}

func skuArg(c *cli.Context) (model.SKU, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("usage: "+c.Command.HelpName+" <sku>", 2)
	}
	return model.SKU(c.Args().First()), nil
}

func shell(ctx context.Context, a *app.App, _ *cli.Context) error {
	return a.RunShell(ctx)
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "persistent cart",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "show the saved cart",
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					a.Cart().UpdateDisplay()
					return nil
				}),
			},
			{
				Name:      "add",
				Usage:     "add a product to the saved cart",
				ArgsUsage: "<sku> <name> <price>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Usage: "regular or auction (default: current mode)"},
				},
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					if c.NArg() != 3 {
						return cli.Exit("usage: "+c.Command.HelpName+" <sku> <name> <price>", 2)
					}
					args := c.Args()
					return result(a.Cart().Add(ctx, args.Get(0), args.Get(1), args.Get(2), model.Mode(c.String("mode"))))
				}),
			},
			{
				Name:  "clear",
				Usage: "empty the saved cart",
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					return result(a.Cart().Clear(ctx))
				}),
			},
		},
	}
}

func barcodeCommand() *cli.Command {
	withSKU := func(run func(ctx context.Context, a *app.App) bool) cli.ActionFunc {
		return withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
			sku, err := skuArg(c)
			if err != nil {
				return err
			}
			return result(a.BarcodeAction(ctx, sku, func() bool { return run(ctx, a) }))
		})
	}

	return &cli.Command{
		Name:  "barcode",
		Usage: "barcode administration",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products available for barcodes",
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					return result(a.Barcode().LoadProducts(ctx))
				}),
			},
			{
				Name:      "preview",
				Usage:     "show product preview",
				ArgsUsage: "<sku>",
				Action:    withSKU(func(context.Context, *app.App) bool { return true }),
			},
			{
				Name:      "generate",
				Usage:     "generate a barcode for one product",
				ArgsUsage: "<sku>",
				Action: withSKU(func(ctx context.Context, a *app.App) bool {
					_, ok := a.Barcode().GenerateBarcode(ctx)
					return ok
				}),
			},
			{
				Name:      "print",
				Usage:     "print page url",
				ArgsUsage: "<sku>",
				Action: withSKU(func(_ context.Context, a *app.App) bool {
					return a.Barcode().PrintBarcode()
				}),
			},
			{
				Name:      "download",
				Usage:     "barcode image download url",
				ArgsUsage: "<sku>",
				Action: withSKU(func(_ context.Context, a *app.App) bool {
					return a.Barcode().DownloadBarcode()
				}),
			},
			{
				Name:  "generate-all",
				Usage: "generate barcodes for all products without one",
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					return result(a.Barcode().GenerateAll(ctx))
				}),
			},
			{
				Name:  "status",
				Usage: "barcode coverage",
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					_, ok := a.Barcode().CheckStatus(ctx)
					return result(ok)
				}),
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kasir := &cli.App{
		Name:   "kasir",
		Usage:  "point of sale terminal",
		Action: withApp(shell),
		Commands: []*cli.Command{
			{
				Name:   "shell",
				Usage:  "interactive cashier session (default)",
				Action: withApp(shell),
			},
			cartCommand(),
			barcodeCommand(),
			{
				Name:  "debug-checkout",
				Usage: "send a test cart to the backend",
				Action: withApp(func(ctx context.Context, a *app.App, c *cli.Context) error {
					return result(a.Barcode().TestCheckout(ctx))
				}),
			},
		},
	}

	if err := kasir.RunContext(ctx, os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		log.Fatalf("kasir: %v", err)
	}
}
