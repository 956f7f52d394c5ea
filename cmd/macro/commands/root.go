package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "macro",
	Short: "macrosig - 금 매크로 시그널 파이프라인",
	Long: `macrosig Unified CLI

금 트레이딩을 위한 매크로 환경 시그널 생성기.
금 선물, 미 10년물 금리, 달러 인덱스, VIX를 스코어링하고
경제 캘린더로 임팩트 윈도우를 판정합니다.

Usage:
  go run ./cmd/macro [command]

Examples:
  go run ./cmd/macro signal
  go run ./cmd/macro calendar
  go run ./cmd/macro scheduler start
  go run ./cmd/macro status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
