package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// signalCmd represents the signal command
var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "매크로 시그널 1회 생성",
	Long: `매크로 시그널 파이프라인을 1회 실행하고 종료합니다.

이 명령어는:
- 금/금리/달러/VIX 시세 조회 (Yahoo chart API)
- 변화율/레벨 기반 시그널 스코어링
- 경제 캘린더 기반 임팩트 윈도우 판정
- CSV 파일로 결과 기록 (전체 교체)

바스켓 조회가 실패하면 중립(0) 스냅샷이 기록됩니다.

Example:
  go run ./cmd/macro signal`,
	RunE: runSignal,
}

func init() {
	rootCmd.AddCommand(signalCmd)
}

func runSignal(cmd *cobra.Command, args []string) error {
	PrintDoubleSeparator()
	fmt.Println("  Macro Signal")
	PrintSeparator()

	a, err := initApp()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	start := time.Now()

	snap, err := a.signalJob.Execute(context.Background(), time.Now().UTC())
	if err != nil {
		PrintError("Signal run failed")
		return err
	}

	if snap.Degraded {
		PrintWarning("Market data unavailable, neutral snapshot written")
	}

	for _, key := range a.rules.Keys() {
		sig, _ := snap.Get(key)
		PrintKeyValue(key, signalLabel(int(sig)), 14)
	}
	PrintKeyValue("total_score", fmt.Sprintf("%d", snap.TotalScore), 14)
	PrintKeyValue("high_impact", fmt.Sprintf("%t", snap.HighImpact), 14)

	PrintSeparator()
	PrintSuccess(fmt.Sprintf("Snapshot written to %s in %.2fs", a.cfg.SignalPath, time.Since(start).Seconds()))

	return nil
}
