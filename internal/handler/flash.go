package handler

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashLevelKey   = "flash_level"
	flashMessageKey = "flash_message"
)

// 提示级别，对应页面上的横幅样式
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashError   = "error"
)

type flashMessage struct {
	Level   string
	Message string
}

// setFlash 把提示写入会话，在重定向后的下一次渲染中展示一次
func setFlash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.Set(flashLevelKey, level)
	session.Set(flashMessageKey, message)
	if err := session.Save(); err != nil {
		log.Printf("failed to save flash message: %v", err)
	}
}

func popFlash(c *gin.Context) *flashMessage {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil
	}
	session := sessions.Default(c)
	message, _ := session.Get(flashMessageKey).(string)
	if message == "" {
		return nil
	}
	level, _ := session.Get(flashLevelKey).(string)
	session.Delete(flashLevelKey)
	session.Delete(flashMessageKey)
	if err := session.Save(); err != nil {
		log.Printf("failed to clear flash message: %v", err)
	}
	return &flashMessage{Level: level, Message: message}
}
