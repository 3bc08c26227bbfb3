// Package config loads the simulator's key/value configuration file, the
// format spec.md §6 defines: one `key = value` entry per line, blank lines
// and `#` comments ignored, unknown keys silently ignored.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DecoderMode selects how the address decoder maps addresses to
// (bank, row, column). See spec.md §9 and SPEC_FULL.md §4.1.
type DecoderMode string

const (
	// DecoderModeLegacy hard-codes 4 banks / 1024 rows / 4 columns,
	// independent of the configured bank/row/column counts. Bit-exact
	// with the C++ reference. Default.
	DecoderModeLegacy DecoderMode = "legacy"

	// DecoderModeScaled computes field widths from the configured
	// DRAMBanks/DRAMRows/DRAMColumns.
	DecoderModeScaled DecoderMode = "scaled"
)

// Config is the immutable set of simulator parameters. Zero value is not
// valid; use Default() or Load().
type Config struct {
	// DRAM configuration.
	DRAMBanks   int
	DRAMRows    int
	DRAMColumns int

	// Flash/hybrid configuration.
	EnableFlash   bool
	FlashCapacity uint64
	FlashPageSize uint32

	// Timing parameters, in cycles.
	RowHitLatency         uint64
	RowMissLatency        uint64
	RefreshLatency        uint64
	FlashReadLatency      uint64
	FlashWriteLatency     uint64
	CachePromotionLatency uint64
	CacheEvictionLatency  uint64
	RefreshInterval       uint64

	// Classifier.
	HotDataThreshold uint64

	// Simulation parameters.
	TraceLines uint64

	// This expansion's additions (SPEC_FULL.md §6.1).
	DecoderMode       DecoderMode
	ResidencyCapacity int
}

// Default returns the configuration the reference simulator uses when no
// config file is supplied, matching original_source's constants.
func Default() Config {
	return Config{
		DRAMBanks:   4,
		DRAMRows:    1024,
		DRAMColumns: 1024,

		EnableFlash:   false,
		FlashCapacity: 16 * 1024 * 1024,
		FlashPageSize: 4096,

		RowHitLatency:         10,
		RowMissLatency:        30,
		RefreshLatency:        100,
		FlashReadLatency:      100,
		FlashWriteLatency:     500,
		CachePromotionLatency: 200,
		CacheEvictionLatency:  200,
		RefreshInterval:       8192,

		HotDataThreshold: 3,

		TraceLines: 10000,

		DecoderMode:       DecoderModeLegacy,
		ResidencyCapacity: 0,
	}
}

// Load reads a config file at path and applies recognized keys over
// Default(). Config read failure is unrecoverable per spec.md §7.
func Load(path string, warn func(key, value string)) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, warn)
}

// Parse reads the key/value format from r, applying recognized keys over
// Default().
func Parse(r io.Reader, warn func(key, value string)) (Config, error) {
	if warn == nil {
		warn = func(string, string) {}
	}

	cfg := Default()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		switch err := apply(&cfg, key, value); {
		case err == errUnknownKey:
			// spec.md §7: unknown keys are silently ignored, not warned.
		case err != nil:
			warn(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}

	if cfg.FlashPageSize == 0 || cfg.FlashCapacity%uint64(cfg.FlashPageSize) != 0 {
		return Config{}, fmt.Errorf("config: flash_capacity %% flash_page_size must be 0 (capacity=%d, page=%d)",
			cfg.FlashCapacity, cfg.FlashPageSize)
	}
	if cfg.DRAMBanks < 1 || cfg.DRAMRows < 1 || cfg.DRAMColumns < 1 {
		return Config{}, fmt.Errorf("config: bank/row/column counts must be positive")
	}

	return cfg, nil
}

func splitKV(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])

	return key, value, key != ""
}

func apply(cfg *Config, key, value string) error {
	switch key {
	case "dram_banks":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.DRAMBanks = n
	case "dram_rows":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.DRAMRows = n
	case "dram_columns", "row_buffer_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.DRAMColumns = n
	case "enable_flash":
		cfg.EnableFlash = value == "true" || value == "1"
	case "flash_capacity":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.FlashCapacity = n
	case "flash_page_size":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.FlashPageSize = uint32(n)
	case "row_access_time":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.RowMissLatency = n
	case "column_access_time":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.RowHitLatency = n
	case "refresh_interval":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.RefreshInterval = n
	case "trace_lines":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.TraceLines = n
	case "decoder_mode":
		switch DecoderMode(value) {
		case DecoderModeLegacy, DecoderModeScaled:
			cfg.DecoderMode = DecoderMode(value)
		default:
			return fmt.Errorf("unrecognized decoder_mode %q", value)
		}
	case "residency_capacity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.ResidencyCapacity = n
	default:
		return errUnknownKey
	}

	return nil
}

var errUnknownKey = errors.New("config: unknown key")
