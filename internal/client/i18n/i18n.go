// Package i18n resolves the message keys the services use for notifications
// into display text. Keys follow the panel's locale files ("actions.new",
// "objects.client", ...). A key missing from the catalogue renders as itself.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator turns a message key into display text.
type Translator interface {
	T(key string) string
}

var supported = []language.Tag{language.English, language.Chinese}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"success":       "Success",
		"error.core":    "Core error",
		"error.dplData": "Duplicate data",
		"client.name":   "Name",

		"actions.new":      "Add",
		"actions.edit":     "Edit",
		"actions.del":      "Delete",
		"actions.save":     "Save",
		"actions.addbulk":  "Bulk add",
		"actions.editbulk": "Bulk edit",
		"actions.delbulk":  "Bulk delete",

		"objects.tag":      "Tag",
		"objects.inbound":  "Inbound",
		"objects.outbound": "Outbound",
		"objects.service":  "Service",
		"objects.endpoint": "Endpoint",
		"objects.client":   "Client",
		"objects.tls":      "TLS",
		"objects.config":   "Config",
		"objects.setting":  "Settings",
		"objects.user":     "User",
		"objects.node":     "Node",

		"node.token":          "Node token",
		"node.tokenGenerated": "Node token generated",
		"node.syncPending":    "Sync not implemented yet",
		"apiKey.title":        "API key",
		"webhook.title":       "Webhook",
	},
	language.Chinese: {
		"success":       "成功",
		"error.core":    "核心错误",
		"error.dplData": "数据重复",
		"client.name":   "名称",

		"actions.new":      "添加",
		"actions.edit":     "编辑",
		"actions.del":      "删除",
		"actions.save":     "保存",
		"actions.addbulk":  "批量添加",
		"actions.editbulk": "批量编辑",
		"actions.delbulk":  "批量删除",

		"objects.tag":      "标签",
		"objects.inbound":  "入站",
		"objects.outbound": "出站",
		"objects.service":  "服务",
		"objects.endpoint": "端点",
		"objects.client":   "客户端",
		"objects.tls":      "TLS",
		"objects.config":   "配置",
		"objects.setting":  "设置",
		"objects.user":     "用户",
		"objects.node":     "节点",

		"node.token":          "节点令牌",
		"node.tokenGenerated": "节点令牌已生成",
		"node.syncPending":    "同步功能尚未实现",
		"apiKey.title":        "API 密钥",
		"webhook.title":       "Webhook",
	},
}

// Catalog is a Translator backed by an x/text message catalogue.
type Catalog struct {
	p *message.Printer
}

// New returns a Catalog for lang (a BCP 47 tag such as "en" or "zh-CN").
// Unknown or unsupported languages fall back to English.
// A message that does not compile is a programming error and panics.
func New(lang string) *Catalog {
	b, err := buildCatalog(messages)
	if err != nil {
		panic(err)
	}

	tag := language.English
	if requested, err := language.Parse(lang); err == nil {
		if _, idx, conf := matcher.Match(requested); conf != language.No {
			tag = supported[idx]
		}
	}
	return &Catalog{p: message.NewPrinter(tag, message.Catalog(b))}
}

func buildCatalog(entries map[language.Tag]map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, texts := range entries {
		for key, text := range texts {
			if err := b.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("message %s[%s]: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

func (c *Catalog) T(key string) string {
	return c.p.Sprintf(key)
}
