package replay

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/voidmarket/market"
)

// Options controls how replay behaves.
type Options struct {
	// If true, a rejected trade aborts the replay. Otherwise it is counted in
	// Result.Rejected and the script continues, which is what you want when
	// probing how far a market can be pushed.
	StopOnReject bool
}

// Result summarizes a replayed script.
type Result struct {
	Rows     int
	Bought   int // units
	Sold     int // units
	Spent    int // credits paid to markets
	Earned   int // credits received from markets
	Rejected int
	Elapsed  time.Duration
}

// Net is credits earned minus credits spent.
func (r Result) Net() int { return r.Earned - r.Spent }

// CSV replays a scripted session against the engine.
//
// Columns:
//
//	action,arg1,arg2,arg3
//
// Actions (case-insensitive):
//
//	BUY:      arg1=location  arg2=commodity  arg3=quantity
//	SELL:     arg1=location  arg2=commodity  arg3=quantity
//	ADVANCE:  arg1=duration (Go syntax, e.g. 90s, 5m)
//
// A header row starting with "action" is skipped, as are lines starting
// with '#'.
func CSV(ctx context.Context, csvPath string, engine *market.Engine, opts Options) (Result, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return Read(ctx, f, engine, opts)
}

// Read is CSV over an arbitrary reader.
func Read(ctx context.Context, src io.Reader, engine *market.Engine, opts Options) (Result, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.Comment = '#'
	r.TrimLeadingSpace = true

	var res Result
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := r.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		if len(row) == 0 {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), "action") {
				continue
			}
		}

		line, _ := r.FieldPos(0)
		if err := handleRow(engine, row, &res, opts); err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		res.Rows++
	}
}

func handleRow(engine *market.Engine, row []string, res *Result, opts Options) error {
	args := make([]string, len(row)-1)
	for i, a := range row[1:] {
		args[i] = strings.TrimSpace(a)
	}

	switch action := strings.ToUpper(strings.TrimSpace(row[0])); action {
	case "BUY", "SELL":
		loc, cid, qty, err := parseTradeArgs(args)
		if err != nil {
			return fmt.Errorf("%s: %w", action, err)
		}

		var rec market.Receipt
		if action == "BUY" {
			rec, err = engine.Buy(loc, cid, qty)
		} else {
			rec, err = engine.Sell(loc, cid, qty)
		}

		var te *market.TradeError
		if errors.As(err, &te) && !opts.StopOnReject {
			res.Rejected++
			return nil
		}
		if err != nil {
			return err
		}

		if action == "BUY" {
			res.Bought += qty
			res.Spent += rec.Total
		} else {
			res.Sold += qty
			res.Earned += rec.Total
		}
		return nil

	case "ADVANCE":
		if len(args) < 1 || args[0] == "" {
			return fmt.Errorf("ADVANCE: need arg1=duration")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("ADVANCE: bad duration %q: %w", args[0], err)
		}
		if d <= 0 {
			return fmt.Errorf("ADVANCE: duration must be positive")
		}
		engine.Advance(d)
		res.Elapsed += d
		return nil

	default:
		return fmt.Errorf("unknown action %q", row[0])
	}
}

func parseTradeArgs(args []string) (loc, cid string, qty int, err error) {
	if len(args) < 3 {
		return "", "", 0, fmt.Errorf("need arg1=location arg2=commodity arg3=quantity")
	}
	loc, cid = args[0], args[1]
	if loc == "" || cid == "" {
		return "", "", 0, fmt.Errorf("location and commodity are required")
	}
	qty, err = strconv.Atoi(args[2])
	if err != nil {
		return "", "", 0, fmt.Errorf("bad quantity %q: %w", args[2], err)
	}
	return loc, cid, qty, nil
}
