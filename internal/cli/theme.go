package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chenyukang/fiber-world/theme"
)

// themeStore keeps the preference next to the config file.
func (a *app) themeStore() *theme.Store {
	return theme.NewStore(filepath.Join(filepath.Dir(a.configPath), "theme.toml"))
}

// initialMode prefers a saved preference over the config default.
func (a *app) initialMode(store *theme.Store) theme.Mode {
	if _, err := os.Stat(store.Path()); errors.Is(err, fs.ErrNotExist) {
		m, err := theme.ParseMode(a.cfg.Canvas.Theme)
		if err != nil {
			return theme.Dark
		}
		return m
	}
	m, err := store.Load()
	if err != nil {
		a.log.Warn("theme preference ignored", "err", err)
	}
	return m
}

func themeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the saved color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.themeStore()
			cur := a.initialMode(store)
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				field(out, "Theme", string(cur))
				field(out, "Saved in", subtle.Sprint(store.Path()))
				return nil
			}

			next := cur.Opposite()
			if args[0] != "toggle" {
				m, err := theme.ParseMode(args[0])
				if err != nil {
					return err
				}
				next = m
			}
			if err := store.Save(next); err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s theme set to %s\n", good.Sprint("✓"), brand.Sprint(next))
			return nil
		},
	}
}
