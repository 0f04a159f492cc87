package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

var tagMessages = map[string]string{
	"required": "不能为空",
	"notblank": "不能为空",
	"max":      "超出长度限制",
	"unique":   "不能重复",
}

// bindError 将绑定/校验错误转换为可读消息
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "请求体格式错误"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "校验失败(" + fe.Tag() + ")"
		}
		msgs = append(msgs, fieldName(fe.Namespace())+" "+msg)
	}
	return strings.Join(msgs, "; ")
}

// fieldName 去掉结构体名前缀，PostRequest.Categories[0].ID -> categories[0].ID
func fieldName(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	if namespace == "" {
		return namespace
	}
	return strings.ToLower(namespace[:1]) + namespace[1:]
}
