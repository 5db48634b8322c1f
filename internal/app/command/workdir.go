package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	workingDirFlag = "working-dir"
)

func AddWorkDirFlag(cmd *cobra.Command) {
	cwd, _ := os.Getwd()

	cmd.PersistentFlags().StringP(workingDirFlag, "w", cwd, "directory relative input paths are resolved against")
}

func GetWorkingDir(cmd *cobra.Command) (string, error) {
	baseDir, err := cmd.Flags().GetString(workingDirFlag)
	if err != nil {
		return "", fmt.Errorf("get working-dir flag: %w", err)
	}
	return baseDir, nil
}

// ResolvePaths makes the paths absolute against the working directory. Empty paths are kept.
func ResolvePaths(cmd *cobra.Command, paths ...string) ([]string, error) {
	baseDir, err := GetWorkingDir(cmd)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "" || filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(baseDir, p)
	}
	return out, nil
}
