package util

import (
	"fmt"
	"strings"
)

// audio containers the transcription service understands
var allowedAudioTypes = []string{
	"audio/", "video/mp4", "video/webm", "application/ogg",
}

// ValidateUploadSize 验证上传大小（必须为正数且不超过上限）
func ValidateUploadSize(size, maxBytes int64) error {
	if size <= 0 {
		return fmt.Errorf("upload is empty")
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("upload too large: %d bytes, max %d", size, maxBytes)
	}
	return nil
}

// ValidateAudioMime 验证音频 MIME 类型；空值放行，由文件名兜底。
func ValidateAudioMime(mime string) error {
	if mime == "" {
		return nil
	}
	m := strings.ToLower(strings.TrimSpace(mime))
	for _, prefix := range allowedAudioTypes {
		if strings.HasPrefix(m, prefix) {
			return nil
		}
	}
	return fmt.Errorf("unsupported content type: %s", mime)
}

// ClampLimit 把分页 limit 收敛到 (0, max]，非法值回落到默认值。
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
