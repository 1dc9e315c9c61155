package main

import (
	"fmt"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/spf13/cobra"
)

func runProvinces(cmd *cobra.Command, args []string) error {
	rules, err := profiles.Load(rulesPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range catalog.Provinces(cat.Rows, rules.IsScopeSentinel) {
		fmt.Fprintln(out, p)
	}
	return nil
}

func runProfiles(cmd *cobra.Command, args []string) error {
	rules, err := profiles.Load(rulesPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range rules.Profiles {
		line := fmt.Sprintf("%-14s %s", p.ID, p.Display())
		if p.Crisis {
			line += " " + mutedStyle.Render("(prioriza emergencias)")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
