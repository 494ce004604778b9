package util

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"questionnaire_backend/internal/model"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "application/pdf"；为空时不限制
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	// 检测 MIME 类型
	mimeType := http.DetectContentType(buffer[:n])
	if len(allowedTypes) == 0 {
		return mimeType, nil
	}

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// AllowedAttachmentTypes 根据题型返回允许上传的 MIME 类型
// 照片和签名只接受图片；文件上传题按 accept 字段（逗号分隔）限制，未配置则不限制
func AllowedAttachmentTypes(q *model.Question) []string {
	switch q.Type {
	case model.QuestionPhoto, model.QuestionSignature:
		return []string{MimeImage}
	case model.QuestionFileUpload:
		if strings.TrimSpace(q.Accept) == "" {
			return nil
		}
		var types []string
		for _, part := range strings.Split(q.Accept, ",") {
			part = strings.TrimSpace(part)
			// "image/*" 形式转换为前缀
			part = strings.TrimSuffix(part, "*")
			if part != "" && strings.Contains(part, "/") {
				types = append(types, part)
			}
		}
		return types
	}
	return nil
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}
