package trading

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteRowsCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeRowsCSV(f, rows)
}

func EncodeRowsCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"producer_id",
		"producer_name",
		"consumer_id",
		"consumer_name",
		"outcome",
		"producer_before_kw",
		"producer_after_kw",
		"consumer_before_kw",
		"consumer_after_kw",
		"transferred_kw",
		"from_grid_kw",
		"grid_delta_kw",
		"cum_grid_delta_kw",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			r.ProducerID,
			r.ProducerName,
			r.ConsumerID,
			r.ConsumerName,
			string(r.Outcome),
			r.ProducerBefore.String(),
			r.ProducerAfter.String(),
			r.ConsumerBefore.String(),
			r.ConsumerAfter.String(),
			r.TransferredKW.String(),
			r.FromGridKW.String(),
			r.GridDelta.String(),
			r.CumGridDelta.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
