package cli

import (
	"fmt"
	"io"
	"tarotstats/internal/models"
	"text/tabwriter"

	json "github.com/goccy/go-json"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printRecord(w io.Writer, format, label string, rec models.CounterRecord) error {
	if format == "json" {
		return writeJSON(w, rec)
	}
	lastVisit := rec.LastVisitDayKey
	if lastVisit == "" {
		lastVisit = "never"
	}
	_, err := fmt.Fprintf(w, "%s %s\n  streak:   %d (last visit %s)\n  readings: %d total, one %d, three %d, custom %d\n",
		label, rec.Key, rec.Streak, lastVisit,
		rec.TotalReadings, rec.OneCardCount, rec.ThreeCardCount, rec.CustomCount)
	return err
}

func printRemoteRows(w io.Writer, format string, rows []*models.RemoteRecord) error {
	if format == "json" {
		if rows == nil {
			rows = []*models.RemoteRecord{}
		}
		return writeJSON(w, rows)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FID\tWALLET\tSTREAK\tLAST VISIT\tREADINGS\tONE\tTHREE\tCUSTOM")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%d\t%d\t%d\n",
			r.FID, r.Wallet, r.Streak, r.LastVisitDayKey,
			r.TotalReadings, r.OneCardCount, r.ThreeCardCount, r.CustomCount)
	}
	return tw.Flush()
}
