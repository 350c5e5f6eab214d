package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline for %s (%d timestamps)": "%s のパイプラインを開始します (%d タイムスタンプ)",
		"Pipeline completed: %d frames, %d bytes":  "パイプラインが完了しました: %d フレーム, %d バイト",
		"Source resolution %dx%d (%s)":             "ソース解像度 %dx%d (%s)",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",

		// Fetch stage
		"Resolving stream URL (attempt %d)":       "ストリームURLを解決中 (試行 %d)",
		"Downloading video to %s":                 "動画を %s にダウンロード中",
		"Downloaded %d%% (%d bytes)":              "%d%% ダウンロード済み (%d バイト)",
		"Transfer stalled, retrying (attempt %d)": "転送が停止しました。再試行します (試行 %d)",
		"Download completed in %d attempts":       "ダウンロードが %d 回の試行で完了しました",

		// Extract stage
		"Extracting %d frames":        "%d フレームを抽出中",
		"Extracted frame at %ss":      "%ss のフレームを抽出しました",
		"Frame extraction completed":  "フレーム抽出が完了しました",

		// Crop stage
		"Cropping %d frames with %d workers": "%d フレームを %d ワーカーでクロップ中",
		"Cropping completed":                 "クロップが完了しました",

		// Compose stage
		"Composing document with %d images": "%d 枚の画像でドキュメントを作成中",
		"Document rendered: %d px tall":     "ドキュメントをレンダリングしました: 高さ %d px",

		// Pack stage
		"Packing %d members":        "%d メンバーを梱包中",
		"Archive created: %d bytes": "アーカイブを作成しました: %d バイト",

		// Warnings
		"No resolution metadata, using %dx%d":                "解像度メタデータがないため %dx%d を使用します",
		"System Chrome not found, falling back to Playwright Chromium": "システムのChromeが見つからないため、PlaywrightのChromiumにフォールバックします",

		// Errors
		"Failed to resolve source metadata: %s": "ソースメタデータの解決に失敗しました: %s",
		"Failed to retrieve source: %s":         "ソースの取得に失敗しました: %s",
		"Failed to resolve metadata: %s":        "メタデータの解決に失敗しました: %s",
		"Failed to extract frames: %s":          "フレームの抽出に失敗しました: %s",
		"Failed to crop frames: %s":             "フレームのクロップに失敗しました: %s",
		"Failed to compose document: %s":        "ドキュメントの作成に失敗しました: %s",
		"Failed to pack deliverable: %s":        "成果物の梱包に失敗しました: %s",
		"Failed to refund quota for %s: %s":     "%s のクォータ返却に失敗しました: %s",
		"Failed to commit quota for %s: %s":     "%s のクォータ確定に失敗しました: %s",
		"Failed to clean workspace %s: %s":      "ワークスペース %s の削除に失敗しました: %s",
	})
}
