package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ключ gin контекста с провалидированной моделью
const ValidatedDataKey = "validatedData"

// один экземпляр валидатора на процесс; имена полей берутся из json тегов
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// StructLevelValidator - модель может добавить проверки, которые не выражаются тегами
type StructLevelValidator interface {
	ValidateFields() map[string]string
}

// ValidateJSON парсит тело в новый экземпляр model, валидирует и кладёт в контекст.
// Ошибки валидации возвращаются по полям: {"error": "...", "details": {"field": "message"}}
func ValidateJSON(model interface{}) gin.HandlerFunc {
	modelType := reflect.TypeOf(model).Elem()

	return func(c *gin.Context) {
		request := reflect.New(modelType).Interface()

		// парсим без встроенной валидации gin
		if err := c.ShouldBindBodyWith(request, binding.JSON); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}

		details := ValidationDetails(request)
		if len(details) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": details,
			})
			return
		}

		c.Set(ValidatedDataKey, request)
		c.Next()
	}
}

// ValidationDetails возвращает сообщения по полям или nil, если модель валидна
func ValidationDetails(request interface{}) map[string]string {
	details := map[string]string{}

	if err := validate.Struct(request); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			details["_"] = err.Error()
			return details
		}
		for _, fieldErr := range validationErrors {
			details[fieldPath(fieldErr)] = fieldMessage(fieldErr)
		}
	}

	if custom, ok := request.(StructLevelValidator); ok {
		for field, msg := range custom.ValidateFields() {
			if _, exists := details[field]; !exists {
				details[field] = msg
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// путь поля без имени корневой структуры: "salary.min"
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fieldErr.Field()
}

// человекочитаемое сообщение для тега валидации
func fieldMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fieldErr.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fieldErr.Param())
	case "gtfield", "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}
