package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-seatmap/internal/locale"
	"github.com/iliyamo/meeting-seatmap/internal/middleware"
	"github.com/iliyamo/meeting-seatmap/internal/service"
	"github.com/iliyamo/meeting-seatmap/internal/sheet"
	"github.com/iliyamo/meeting-seatmap/internal/utils"
)

func newGenerateCmd() *cobra.Command {
	var (
		input       string
		output      string
		seatsPerRow int
		lang        string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a seating chart workbook from an attendee list",
		Long: `Reads an attendee list (xlsx or csv with PERSONID and NAME columns),
seats it row by row from the centre outward and writes the chart to an xlsx
workbook.  The placement list is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("%w: %w", sheet.ErrInputRead, err)
			}
			svc := service.New(service.Options{Logger: logger})
			res, err := svc.Generate(context.Background(), service.Request{
				FileName:    filepath.Base(input),
				Data:        data,
				SeatsPerRow: seatsPerRow,
				Locale:      lang,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, res.Document, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("chart written", zap.String("path", output), zap.Int("rows", res.Rows))
			out := cmd.OutOrStdout()
			if res.Explanation != "" {
				fmt.Fprintln(out, res.Explanation)
			}
			fmt.Fprintf(out, "wrote %s (%d attendees, %d rows)\n", output, res.Attendees, res.Rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "meetperson.xlsx", "attendee list (.xlsx or .csv)")
	cmd.Flags().StringVarP(&output, "output", "o", sheet.FileName, "chart workbook to write")
	cmd.Flags().IntVarP(&seatsPerRow, "seats-per-row", "w", 0, "number of seats in each row")
	cmd.Flags().StringVar(&lang, "locale", locale.Default, "chart language ("+strings.Join(locale.Codes(), ", ")+")")
	_ = cmd.MarkFlagRequired("seats-per-row")
	return cmd
}

func newLayoutCmd() *cobra.Command {
	var seatsPerRow int
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the seat labels and fill order of a row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := service.New(service.Options{Logger: logger}).Layout(seatsPerRow)
			if err != nil {
				return err
			}
			var b bytes.Buffer
			fmt.Fprintf(&b, "labels:     %s\n", strings.Join(layout.SeatLabels, " "))
			fmt.Fprintf(&b, "fill order: %s\n", strings.Join(layout.FillLabels, " "))
			_, err = cmd.OutOrStdout().Write(b.Bytes())
			return err
		},
	}
	cmd.Flags().IntVarP(&seatsPerRow, "seats-per-row", "w", 0, "number of seats in each row")
	_ = cmd.MarkFlagRequired("seats-per-row")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token for the export history endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			tok, err := utils.NewOperatorToken(secret, subject, middleware.OperatorRole, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			logger.Info("token minted", zap.String("sub", subject), zap.Time("exp", tok.Exp))
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to $JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
