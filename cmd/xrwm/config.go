package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/xrwm/internal/config"
)

func newConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the configuration",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Config file path (default: ~/.config/xrwm/config.yaml)")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config: ok")
			return nil
		},
	}

	var printDefaults bool
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !printDefaults {
				res, err := loadConfig(path)
				if err != nil {
					return err
				}
				cfg = res.Config
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	printCmd.Flags().BoolVar(&printDefaults, "defaults", false, "Print built-in defaults (no files)")

	explain := &cobra.Command{
		Use:   "explain <yaml.path>",
		Short: "Show a value and where it was set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig(path)
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "path: %s\n", args[0])
			fmt.Fprintf(w, "source: %s\n", formatSource(src))
			fmt.Fprintf(w, "value:\n%s", string(out))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				target = p
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
			cfg := config.DefaultConfig()
			var err error
			if path == "" {
				err = cfg.Save()
			} else {
				err = cfg.SaveTo(target)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(validate, printCmd, explain, initCmd)
	return cmd
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceBuiltin:
		if src.Name != "" {
			return "builtin:" + src.Name
		}
		return "builtin"
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
