package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	txs    *csv.Writer
	ticks  *csv.Writer
	tf, kf *os.File
}

var (
	transactionHeader = []string{"tx_id", "time", "location", "commodity", "action", "quantity", "unit_price", "total"}
	tickHeader        = []string{"time", "elapsed_seconds", "records", "shocks", "replenished"}
)

// NewCSV opens both journal files for appending, creating them as needed.
// The header row is written only to empty files.
func NewCSV(transactionsPath, ticksPath string) (*CSV, error) {
	tf, tw, err := openCSV(transactionsPath, transactionHeader)
	if err != nil {
		return nil, err
	}
	kf, kw, err := openCSV(ticksPath, tickHeader)
	if err != nil {
		tf.Close()
		return nil, err
	}

	return &CSV{tw, kw, tf, kf}, nil
}

func openCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	fh, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	info, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, nil, err
	}

	w := csv.NewWriter(fh)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			fh.Close()
			return nil, nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			fh.Close()
			return nil, nil, err
		}
	}
	return fh, w, nil
}

func (j *CSV) RecordTransaction(t TransactionRecord) error {
	err := j.txs.Write([]string{
		t.ID,
		t.Time.Format(time.RFC3339),
		t.Location,
		t.Commodity,
		t.Action,
		strconv.Itoa(t.Quantity),
		strconv.Itoa(t.UnitPrice),
		strconv.Itoa(t.Total),
	})
	if err != nil {
		return err
	}

	j.txs.Flush()
	return j.txs.Error()
}

func (j *CSV) RecordTick(r TickRecord) error {
	err := j.ticks.Write([]string{
		r.Time.Format(time.RFC3339),
		f(r.Elapsed.Seconds()),
		strconv.Itoa(r.Records),
		strconv.Itoa(r.Shocks),
		strconv.Itoa(r.Replenished),
	})
	if err != nil {
		return err
	}

	j.ticks.Flush()
	return j.ticks.Error()
}

func (j *CSV) Close() error {
	j.txs.Flush()
	if err := j.txs.Error(); err != nil {
		return err
	}
	j.ticks.Flush()
	if err := j.ticks.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	if err := j.kf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
