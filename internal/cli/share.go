// share.go implements the "byetax share", "open-share" and "export" commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/notify"
	"github.com/byetax/byetax/internal/render"
	"github.com/byetax/byetax/internal/share"
)

var (
	viaFlag  string
	copyFlag bool
)

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Create a read-only share link for an analysis",
	Long: `Create a share link valid for seven days and print it.

--copy puts it on the clipboard; --via kakao or --via sms opens the
messenger with the link prefilled.`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().StringVar(&viaFlag, "via", "", "Open a messenger: kakao | sms")
	shareCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the link to the clipboard")
}

func runShare(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()
	client, err := e.authed()
	if err != nil {
		return err
	}

	tok, err := client.CreateShare(context.Background(), id)
	if err != nil {
		return e.check(err)
	}
	link, err := share.BuildURL(e.cfg.SharePageURL(), tok.Token)
	if err != nil {
		return err
	}
	e.log.Event(log.EventShareCreated, zap.Int64("id", id))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, link)

	if copyFlag {
		method, err := share.NewCopier(os.Stdout).Copy(link)
		switch {
		case err != nil:
			fmt.Fprintln(cmd.ErrOrStderr(), "Clipboard unavailable; copy the link above manually.")
		case method == share.CopyTerminal:
			fmt.Fprintln(cmd.ErrOrStderr(), "Link sent to the terminal clipboard.")
		default:
			fmt.Fprintln(cmd.ErrOrStderr(), "Link copied.")
		}
	}

	if viaFlag != "" {
		uri, err := share.Intent(share.Channel(viaFlag), link)
		if err != nil {
			return err
		}
		if err := share.Open(uri); err != nil {
			return err
		}
	}
	return nil
}

var openShareCmd = &cobra.Command{
	Use:   "open-share <token>",
	Short: "Print a shared analysis",
	Long:  `Print the analysis behind a share token. No login is needed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.client.GetShared(context.Background(), args[0])
		if err != nil {
			e.log.Error("share", err)
			return errors.New(api.Message(err))
		}
		e.log.Event(log.EventShareOpened)
		return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), nil, res.Taxpayer.ID, res, render.NewSharedMount())
	},
}

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Download the Excel export of an analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		client, err := e.authed()
		if err != nil {
			return err
		}

		exp, err := client.ExportExcel(context.Background(), id)
		if err != nil {
			return e.check(err)
		}
		dir := exportDir
		if dir == "" {
			dir = e.cfg.Export.Dir
		}
		path, err := exp.Save(dir)
		if err != nil {
			return err
		}
		e.log.Event(log.EventExport, zap.String("path", path))
		if e.cfg.Export.Notify {
			if err := notify.ExportSaved(path); err != nil {
				e.log.Error("notify", err, zap.String("path", path))
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "Directory to save into (default from config)")
}
