package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"galvani/internal/catalog"
	"galvani/internal/logging"
	"galvani/internal/redox"
)

const defaultBaseURL = "http://localhost:8080"

var log = zap.NewNop().Sugar()

func main() {
	global := flag.NewFlagSet("galvani", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	catalogName := global.String("catalog", catalog.NameExtended, "species table: daniell or extended")
	logLevel := global.String("log-level", "warn", "diagnostic log level")
	_ = global.Parse(os.Args[1:])

	log = logging.Must(*logLevel, "development").Sugar()
	defer func() { _ = log.Sync() }()

	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	rest := []string{}
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "simulate":
		runSimulate(*catalogName)
	case "species":
		handleSpecies(*catalogName, args[1:])
	case "resolve":
		handleResolve(ctx, client, *baseURL, *catalogName, args[1:])
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "notebook":
		handleNotebook(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "watch":
		handleWatch(*baseURL, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func mustEngine(name string) *redox.Engine {
	cat, err := catalog.ByName(name)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	return redox.NewEngine(cat)
}

func runSimulate(catalogName string) {
	err := newConsole(mustEngine(catalogName), os.Stdin, os.Stdout).run()
	if err != nil {
		if redox.IsFatal(err) {
			log.Errorw("species table is corrupt", "error", err)
			os.Exit(2)
		}
		log.Fatalf("simulate: %v", err)
	}
}

func handleSpecies(catalogName string, args []string) {
	fs := flag.NewFlagSet("species", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	_ = fs.Parse(args)

	engine := mustEngine(catalogName)
	if *asJSON {
		printJSON(engine.Catalog.List())
		return
	}
	writeTable(os.Stdout, engine)
}

func handleResolve(ctx context.Context, client *http.Client, baseURL, catalogName string, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	first := fs.String("first", "", "first species formula, e.g. Zn(s)")
	second := fs.String("second", "", "second species formula, e.g. Cu2+(aq)")
	via := fs.String("via", "local", "where to resolve: local, http or grpc")
	grpcAddr := fs.String("grpc", "127.0.0.1:9092", "gRPC server address (with -via grpc)")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)

	if *first == "" || *second == "" {
		log.Fatal("first and second are required")
	}

	switch *via {
	case "local":
		res, err := mustEngine(catalogName).Simulate(*first, *second)
		if err != nil {
			if redox.IsFatal(err) {
				log.Errorw("species table is corrupt", "error", err)
				os.Exit(2)
			}
			fmt.Fprintln(os.Stderr, describe(err))
			os.Exit(1)
		}
		if *asJSON {
			printJSON(res)
			return
		}
		writeResult(os.Stdout, res)
	case "http":
		var out map[string]any
		payload := map[string]string{"first": *first, "second": *second}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/cells", "", payload, &out); err != nil {
			log.Fatalf("resolve failed: %v", err)
		}
		printJSON(out)
	case "grpc":
		out, err := resolveGRPC(ctx, *grpcAddr, *first, *second)
		if err != nil {
			log.Fatalf("resolve failed: %v", err)
		}
		printJSON(out)
	default:
		log.Fatal("usage: galvani resolve -first X -second Y [-via local|http|grpc]")
	}
}

func printUsage() {
	fmt.Println("galvani [-api URL] [-catalog daniell|extended] <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  simulate                      interactive cell builder")
	fmt.Println("  species [-json]")
	fmt.Println("  resolve -first X -second Y [-via local|http|grpc]")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  notebook add|list|show|remove")
	fmt.Println("  watch [-tcp addr]")
}
