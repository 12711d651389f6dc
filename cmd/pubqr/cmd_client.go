package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/views"
)

var (
	apiURL     string
	apiTimeout time.Duration
)

var (
	menuTable, menuQR, menuCategory, menuQuery string
	orderTable, orderQR                        string
	trackID                                    string
	trackInterval                              time.Duration
	staffPIN, boardStatus                      string
)

func tableFlag(table, qr string) (string, error) {
	if qr != "" {
		return views.TableFromURL(qr)
	}
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("--table or --qr is required")
	}
	return strings.TrimSpace(table), nil
}

// pubqr menu
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the menu for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := tableFlag(menuTable, menuQR)
		if err != nil {
			return err
		}
		s := views.NewCustomerSession(apiClient(), table)
		if err := s.LoadMenu(cmd.Context()); err != nil {
			return err
		}

		names := map[string]string{}
		for _, c := range s.Categories() {
			names[c.ID.Hex()] = c.Name
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Table %s\n", s.Table())
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY")
		for _, p := range s.Filter(menuCategory, menuQuery) {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.ID.Hex(), p.Name, p.Price, names[p.CategoryID])
		}
		return w.Flush()
	},
}

// pubqr order
var orderCmd = &cobra.Command{
	Use:   "order <productId>...",
	Short: "Place an order; repeat an id to order more than one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := tableFlag(orderTable, orderQR)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		s := views.NewCustomerSession(apiClient(), table)
		if err := s.LoadMenu(ctx); err != nil {
			return err
		}
		for _, id := range args {
			if err := s.Add(id); err != nil {
				return err
			}
		}

		order, err := s.PlaceOrder(ctx)
		if err != nil {
			return err
		}
		printOrder(cmd.OutOrStdout(), order)
		return nil
	},
}

// pubqr track
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Follow an order's status until it is paid",
	RunE: func(cmd *cobra.Command, args []string) error {
		if trackID == "" {
			return fmt.Errorf("--id is required")
		}
		if trackInterval <= 0 {
			return fmt.Errorf("--interval must be positive, got %s", trackInterval)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		s := views.NewCustomerSession(apiClient(), "")
		s.Track(trackID)

		var last models.Status
		s.Poll(ctx, trackInterval, func(o models.Order) {
			if o.Status != last {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", time.Now().Format("15:04:05"), o.TableCode, o.Status)
				last = o.Status
			}
			if o.Status.Terminal() {
				cancel()
			}
		})
		return nil
	},
}

// pubqr board
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "List orders by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := views.NewStaffBoard(apiClient())
		if err := b.Login(cmd.Context(), staffPIN); err != nil {
			return err
		}

		statuses := models.Pipeline
		if boardStatus != "" {
			st, err := models.ParseStatus(boardStatus)
			if err != nil {
				return err
			}
			statuses = []models.Status{st}
		}

		lists := b.Lists()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		for _, st := range statuses {
			fmt.Fprintf(w, "== %s (%d)\n", st, len(lists[st]))
			for _, o := range lists[st] {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", o.ID.Hex(), o.TableCode, o.Total, o.CreatedAt.Local().Format("15:04"))
			}
		}
		return w.Flush()
	},
}

// pubqr advance
var advanceCmd = &cobra.Command{
	Use:   "advance <orderId>",
	Short: "Move an order to its next status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b := views.NewStaffBoard(apiClient())
		if err := b.Login(ctx, staffPIN); err != nil {
			return err
		}
		order, err := b.Advance(ctx, args[0])
		if err != nil {
			return err
		}
		printOrder(cmd.OutOrStdout(), order)
		return nil
	},
}

func printOrder(out io.Writer, o models.Order) {
	fmt.Fprintf(out, "order %s  table %s  status %s  total %d\n", o.ID.Hex(), o.TableCode, o.Status, o.Total)
	for _, it := range o.Items {
		fmt.Fprintf(out, "  %d x %s @ %d\n", it.Qty, it.Name, it.Price)
	}
}

func init() {
	menuCmd.Flags().StringVar(&menuTable, "table", "", "table code")
	menuCmd.Flags().StringVar(&menuQR, "qr", "", "URL from the table's QR code")
	menuCmd.Flags().StringVar(&menuCategory, "category", "", "category id (all for every category)")
	menuCmd.Flags().StringVar(&menuQuery, "q", "", "filter by name")

	orderCmd.Flags().StringVar(&orderTable, "table", "", "table code")
	orderCmd.Flags().StringVar(&orderQR, "qr", "", "URL from the table's QR code")

	trackCmd.Flags().StringVar(&trackID, "id", "", "order id")
	trackCmd.Flags().DurationVar(&trackInterval, "interval", views.DefaultPollInterval, "poll interval")

	boardCmd.Flags().StringVar(&staffPIN, "pin", "", "staff PIN")
	boardCmd.Flags().StringVar(&boardStatus, "status", "", "only this status")
	advanceCmd.Flags().StringVar(&staffPIN, "pin", "", "staff PIN")
}

// apiClient builds the client for the --api and --timeout flags.
func apiClient() *views.Client {
	c := views.NewClient(apiURL)
	c.Timeout = apiTimeout
	return c
}
