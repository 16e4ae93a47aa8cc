package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxshaw/sqlbuilder/conn"
)

var pingTimeout time.Duration

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Open and ping the configured connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		conns := cfg.Connections()

		targets := []struct {
			name string
			open func() (*conn.DB, error)
		}{
			{"default", conns.DefaultConn},
			{"read", conns.ReadConn},
			{"write", conns.WriteConn},
		}

		for _, t := range targets {
			if err := ping(cmd.Context(), t.name, t.open); err != nil {
				return &exitError{code: exitDBConnect, msg: "pinging " + t.name, err: err}
			}
		}
		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 5*time.Second, "per-connection timeout")
}

func ping(ctx context.Context, name string, open func() (*conn.DB, error)) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return err
	}
	fmt.Printf("%-8s %s ok\n", name, db.Provider())
	return nil
}
