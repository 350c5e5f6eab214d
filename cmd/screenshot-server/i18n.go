// Package main provides localization for the screenshot server CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Capture video frames at timestamps and deliver them as a ZIP with a composed PDF": "タイムスタンプで動画フレームをキャプチャし、PDF付きZIPとして配信",

		// Serve command
		"Run the HTTP API server":          "HTTP APIサーバーを起動",
		"Listen address (overrides config)": "リッスンアドレス（設定を上書き）",

		// Run command
		"Run one capture job from the command line":        "コマンドラインからキャプチャジョブを1件実行",
		"Video URL to capture":                             "キャプチャする動画URL",
		"Timestamp in seconds (repeatable)":                "タイムスタンプ（秒、複数指定可）",
		"Output ZIP file path":                             "出力ZIPファイルパス",
		"Save intermediate artifacts to the debug directory": "中間成果物をデバッグディレクトリに保存",
		"Suppress all log output":                          "全てのログ出力を抑制",

		// Shared flags
		"Path to a YAML configuration file":          "YAML設定ファイルのパス",
		"Log level (debug, info, warn, error, quiet)": "ログレベル（debug, info, warn, error, quiet）",

		// Runtime messages
		"Output saved to %s":            "出力を %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Using %s renderer backend":     "%s レンダラーバックエンドを使用します",
	})
}
