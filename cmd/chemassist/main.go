/*
 * main.go, part of chemassist.
 *
 *
 * Copyright 2019 Tom Mason <tommason14@gmail.com>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	chem "github.com/tmason/chemassist"
	"github.com/tmason/chemassist/interactions"
	"github.com/tmason/chemassist/job"
	"github.com/tmason/chemassist/qm"
)

var (
	verbose bool
	logger  *zap.Logger
)

const bomMarker = "\ufeff"

var rootCmd = &cobra.Command{
	Use:   "chemassist",
	Short: "Builds, organizes and digests quantum chemistry calculations",
	Long: `chemassist automates the life cycle of GAMESS and PSI4 calculations:
it builds input decks from XYZ geometries (with optional FMO fragment
decomposition), lays job artifacts out in a directory convention,
extracts energies from finished logs, recovers non-converged
optimizations, and aggregates single-point results into ranked
interaction energies.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	xyzFile      string
	engineName   string
	fmo          bool
	frags        bool
	hint         int
	settingsFile string
	jobName      string
	supercomp    string
	asComplex    bool
)

var inputCmd = &cobra.Command{
	Use:   "input",
	Short: "Build an input deck (and optionally fragment sub-jobs) from an XYZ geometry",
	RunE:  runInput,
}

var (
	resultsDir  string
	resultsOut  string
	recoverRuns bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Extract energies from log files under a directory into a results CSV",
	RunE:  runResults,
}

var (
	intCSV  string
	intOut  string
	intPlot string
)

var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "Aggregate a results CSV into ranked interaction energies",
	RunE:  runInteractions,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	inputCmd.Flags().StringVar(&xyzFile, "xyz", "", "XYZ geometry file (required)")
	inputCmd.Flags().StringVar(&engineName, "engine", "gamess", "electronic structure program: gamess or psi4")
	inputCmd.Flags().BoolVar(&fmo, "fmo", false, "use the fragment molecular orbital decomposition (GAMESS only)")
	inputCmd.Flags().BoolVar(&frags, "frags", false, "also build one sub-job per fragment plus the ionic network")
	inputCmd.Flags().IntVar(&hint, "hint", 0, "expected number of chemical units, 0 if unknown")
	inputCmd.Flags().StringVar(&settingsFile, "settings", "", "YAML settings overlaid on the engine defaults")
	inputCmd.Flags().StringVar(&jobName, "name", "", "base name of the generated files (default: run-type stem)")
	inputCmd.Flags().StringVar(&supercomp, "supercomp", "", "write a submission script for this machine (raijin/magnus/gaia/monarch)")
	inputCmd.Flags().BoolVar(&asComplex, "complex", false, "place artifacts under complex/ and keep the source geometry as complex.xyz")
	_ = inputCmd.MarkFlagRequired("xyz")

	resultsCmd.Flags().StringVar(&resultsDir, "dir", ".", "directory tree to scan for log files")
	resultsCmd.Flags().StringVar(&resultsOut, "out", "results.csv", "output CSV")
	resultsCmd.Flags().BoolVar(&recoverRuns, "recover", true, "write rerun inputs for non-converged optimizations")

	interactionsCmd.Flags().StringVar(&intCSV, "csv", "results.csv", "results CSV to aggregate")
	interactionsCmd.Flags().StringVar(&intOut, "out", "ranked.csv", "ranked output CSV")
	interactionsCmd.Flags().StringVar(&intPlot, "plot", "", "also write a scatter plot of the ranked energies (.png)")

	rootCmd.AddCommand(inputCmd, resultsCmd, interactionsCmd)
}

func engine() (job.Engine, error) {
	switch strings.ToLower(engineName) {
	case "gamess":
		return job.GAMESS, nil
	case "psi", "psi4":
		return job.PSI4, nil
	}
	return job.GAMESS, fmt.Errorf("unknown engine %q, use gamess or psi4", engineName)
}

func runInput(cmd *cobra.Command, args []string) error {
	eng, err := engine()
	if err != nil {
		return err
	}
	mol, err := chem.XYZRead(xyzFile)
	if err != nil {
		return err
	}
	settings := qm.NewSettings()
	if settingsFile != "" {
		if settings, err = qm.ReadSettings(settingsFile); err != nil {
			return err
		}
	}
	var h qm.Handle
	if eng == job.PSI4 {
		h = qm.NewPsiHandle()
	} else {
		gh := qm.NewGamessHandle()
		gh.SetFMO(fmo)
		gh.SetFragmentHint(hint)
		h = gh
	}
	if jobName != "" {
		h.SetName(jobName)
	}
	if err := h.BuildInput(mol, settings); err != nil {
		return err
	}
	base := h.Name()
	files := []string{base + ".inp"}
	logger.Info("wrote input deck", zap.String("file", base+".inp"))

	if supercomp != "" {
		script := base + ".job"
		if err := job.WriteScript(script, eng, supercomp, base, job.ResourcesFrom(settings)); err != nil {
			return err
		}
		files = append(files, script)
		logger.Info("wrote submission script", zap.String("file", script))
	}

	dest, err := job.Place(".", base, asComplex, xyzFile, files...)
	if err != nil {
		return err
	}
	logger.Info("placed artifacts", zap.String("dir", dest))

	if frags {
		q, err := job.FragmentRequests(mol, settings, hint, eng)
		if err != nil {
			return err
		}
		n := q.Len()
		if err := q.Build("."); err != nil {
			return err
		}
		logger.Info("built fragment sub-jobs", zap.Int("count", n))
	}
	return nil
}

func isLog(name string) bool {
	for _, suffix := range []string{".log", ".out", ".log.gz", ".out.gz"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func runResults(cmd *cobra.Command, args []string) error {
	var logs []string
	err := filepath.WalkDir(resultsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isLog(d.Name()) {
			logs = append(logs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(logs)

	var recs []*qm.JobRecord
	for _, path := range logs {
		gout, err := qm.ReadGamessOutput(path)
		if err != nil {
			logger.Warn("unreadable log", zap.String("file", path), zap.Error(err))
			continue
		}
		if !gout.Completed() {
			if !recoverRuns {
				logger.Warn("incomplete run", zap.String("file", path))
				continue
			}
			msg, rerr := gout.Recover()
			if rerr != nil {
				logger.Error("recovery failed", zap.String("file", path), zap.Error(rerr))
				continue
			}
			logger.Warn(msg)
			continue
		}
		rec, err := gout.Data()
		if err != nil {
			//a log can terminate normally yet miss the expected energy
			//markers; the file is reported, not fatal
			logger.Warn("incomplete record", zap.String("file", path), zap.Error(err))
			continue
		}
		recs = append(recs, rec)
	}

	out, err := os.Create(resultsOut)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := writeResults(out, recs); err != nil {
		return err
	}
	logger.Info("wrote results",
		zap.String("file", resultsOut),
		zap.Int("logs", len(logs)),
		zap.Int("records", len(recs)))
	return nil
}

//writeResults emits the results CSV: BOM so spreadsheet tooling reads the
//encoding, header row, one row per record. An absent energy stays an empty
//field, never a fake 0.0.
func writeResults(out io.Writer, recs []*qm.JobRecord) error {
	if _, err := io.WriteString(out, bomMarker); err != nil {
		return err
	}
	w := csv.NewWriter(out)
	if err := w.Write([]string{"file", "path", "basis", "HF_energy", "MP2_energy"}); err != nil {
		return err
	}
	for _, rec := range recs {
		hf, mp2 := "", ""
		if rec.HasHF {
			hf = strconv.FormatFloat(rec.HF, 'f', 10, 64)
		}
		if rec.HasMP2 {
			mp2 = strconv.FormatFloat(rec.MP2, 'f', 10, 64)
		}
		if err := w.Write([]string{rec.File, rec.Path, rec.Basis, hf, mp2}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func runInteractions(cmd *cobra.Command, args []string) error {
	recs, err := interactions.ReadRecords(intCSV)
	if err != nil {
		return err
	}
	configs, purelyIonic := interactions.Aggregate(recs)
	ranked := interactions.Rank(configs)
	if err := interactions.WriteCSV(intOut, ranked, purelyIonic); err != nil {
		return err
	}
	logger.Info("wrote ranked energies",
		zap.String("file", intOut),
		zap.Int("configurations", len(ranked)),
		zap.Bool("purely_ionic", purelyIonic))
	if intPlot != "" {
		if err := interactions.PlotRanks(ranked, intPlot); err != nil {
			return err
		}
		logger.Info("wrote plot", zap.String("file", intPlot))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
