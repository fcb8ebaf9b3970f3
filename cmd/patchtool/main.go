// patchtool inspects and exercises the client translation layer offline.
//
// Usage:
//
//	go run ./cmd/patchtool <command> [-config path] [flags]
//
// Commands: opcodes, slots, serialize, replay, import
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/eqgo/server/internal/config"
	"github.com/eqgo/server/internal/data"
	"github.com/eqgo/server/internal/emu"
	gonet "github.com/eqgo/server/internal/net"
	"github.com/eqgo/server/internal/patch"
	"github.com/eqgo/server/internal/patch/tds"
	"github.com/eqgo/server/internal/persist"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: patchtool <command> [-config path] [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  opcodes     validate the opcode file and list translator coverage")
	fmt.Println("  slots       print the server to client slot map")
	fmt.Println("  serialize   serialize an inventory fixture and dump it as hex")
	fmt.Println("  replay      identify and decode a capture file")
	fmt.Println("  import      copy YAML item templates into the database")
}

// ── Display helpers ────────────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Commands ───────────────────────────────────────────────────────

type options struct {
	inventory string
	capture   string
}

type env struct {
	cfg  *config.Config
	log  *zap.Logger
	opts *options
}

type command func(e *env) error

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return errors.New("no command")
	}
	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage()
		return nil
	}

	commands := map[string]command{
		"opcodes":   cmdOpcodes,
		"slots":     cmdSlots,
		"serialize": cmdSerialize,
		"replay":    cmdReplay,
		"import":    cmdImport,
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		return fmt.Errorf("unknown command: %s", name)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfgPath := fs.String("config", "config/patchtool.toml", "config file")
	opts := &options{}
	fs.StringVar(&opts.inventory, "inventory", "data/yaml/inventory.yaml", "inventory fixture (serialize)")
	fs.StringVar(&opts.capture, "capture", "", "capture file of client frames (replay)")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	if p := os.Getenv("EQPATCH_CONFIG"); p != "" {
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	return cmd(&env{cfg: cfg, log: log, opts: opts})
}

// strategy loads the configured client patch.
func (e *env) strategy() (*patch.Strategy, error) {
	if e.cfg.Patch.Name != tds.Name {
		return nil, fmt.Errorf("unsupported patch %q", e.cfg.Patch.Name)
	}
	return tds.New(e.cfg.Patch.OpcodeDir, e.log)
}

func cmdOpcodes(e *env) error {
	s, err := e.strategy()
	if err != nil {
		return err
	}
	printSection("Opcodes " + s.Name())
	ops := s.Opcodes()
	tbl := s.Table()

	bound := 0
	var missing []string
	for _, op := range emu.Opcodes() {
		if ops.EmuToEQ(op) != 0 {
			bound++
		} else if tbl.HasEncoder(op) || tbl.HasDecoder(op) {
			missing = append(missing, op.String())
		}
	}
	printStat("bound opcodes", bound)
	printStat("encoders", len(tbl.EncodeOps()))
	printStat("decoders", len(tbl.DecodeOps()))
	for _, name := range missing {
		fmt.Printf("  \033[31m✗\033[0m %s has a translator but no wire number\n", name)
	}
	if len(missing) == 0 {
		printOK("every translated opcode is bound")
	}
	return nil
}

func cmdSlots(_ *env) error {
	printSection("Slots " + tds.Name)
	for _, r := range emu.Regions {
		first := tds.ToClientSlot(r.Begin, tds.ContextInventory)
		last := tds.ToClientSlot(r.End, tds.ContextInventory)
		fmt.Printf("  %-18s %5d-%-5d  type %2d  main %3d/%-3d  sub %3d/%-3d\n",
			r.Name, r.Begin, r.End, first.Type, first.Main, last.Main, first.Sub, last.Sub)
	}
	c := tds.ToClientSlot(emu.CorpseBegin, tds.ContextLoot)
	fmt.Printf("  %-18s %5d-%-5d  type %2d  main %3d+\n", "corpse", emu.CorpseBegin, emu.CorpseEnd, c.Type, c.Main)
	m := tds.ToClientSlot(emu.MerchantBegin, tds.ContextMerchant)
	fmt.Printf("  %-18s %5d-%-5d  type %2d  main %3d+\n", "merchant", emu.MerchantBegin, emu.MerchantEnd, m.Type, m.Main)
	return nil
}

// loadItems reads item templates from the configured source.
func (e *env) loadItems(ctx context.Context) (*data.ItemTable, error) {
	if e.cfg.Data.Source == "db" {
		db, err := persist.NewDB(ctx, e.cfg.Database, e.log)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		templates, err := persist.NewItemTemplateRepo(db).LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		return data.NewItemTable(templates), nil
	}
	return data.LoadItemTable(e.cfg.Data.ItemsPath)
}

func cmdSerialize(e *env) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	items, err := e.loadItems(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	entries, err := data.LoadInventory(e.opts.inventory, items)
	if err != nil {
		return err
	}
	s, err := e.strategy()
	if err != nil {
		return err
	}

	printSection("Serialize " + s.Name())
	printStat("item templates", items.Count())
	printStat("inventory entries", len(entries))
	out := s.Encode(emu.CharInventory{Items: entries})
	if out.Outcome == patch.Dropped {
		return fmt.Errorf("encode inventory: %w", out.Err)
	}
	for _, pkt := range out.Packets {
		fmt.Printf("\nopcode %#04x, %d bytes\n%s", pkt.Opcode, len(pkt.Data), hex.Dump(pkt.Data))
	}
	return nil
}

func cmdReplay(e *env) error {
	capture := e.opts.capture
	if capture == "" {
		return errors.New("replay: -capture is required")
	}
	f, err := os.Open(capture)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	id := patch.NewIdentifier(e.log)
	if _, err := tds.Register(id, e.cfg.Patch.OpcodeDir, e.log); err != nil {
		return err
	}

	printSection("Replay " + capture)
	st := gonet.NewStream(f, id, e.log)
	counts := map[patch.Outcome]int{}
	for {
		pkt, in, err := st.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		counts[in.Outcome]++
		if in.Message == nil {
			fmt.Printf("  %#04x %5d  %s\n", pkt.Opcode, len(pkt.Data), in.Outcome)
			continue
		}
		fmt.Printf("  %#04x %5d  %-12s %s %+v\n", pkt.Opcode, len(pkt.Data), in.Outcome, in.Op, in.Message)
	}
	if st.State() == gonet.StateIdentified {
		printOK(fmt.Sprintf("identified as %s", st.Signature()))
	}
	printStat("translated", counts[patch.Translated])
	printStat("passthrough", counts[patch.Passthrough])
	printStat("dropped", counts[patch.Dropped])
	return nil
}

func cmdImport(e *env) error {
	items, err := data.LoadItemTable(e.cfg.Data.ItemsPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	printSection("Database")
	db, err := persist.NewDB(ctx, e.cfg.Database, e.log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	printOK("PostgreSQL connected")

	version, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	printOK(fmt.Sprintf("schema at version %d", version))

	if err := persist.NewItemTemplateRepo(db).Import(ctx, items.All()); err != nil {
		return err
	}
	printStat("item templates", items.Count())
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
