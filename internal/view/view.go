package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

const (
	Title      = "Encrypted Tip Jar"
	Subtitle   = "Connect your wallet to donate a “hidden” amount."
	Footer     = "This uses the temporary dummy FHE library (value is stored as a uint256)."
	UnknownTip = "—"
)

// State 渲染所需的全部输入
type State struct {
	Connected bool     `json:"connected"`
	Address   string   `json:"address,omitempty"`
	Provider  string   `json:"provider,omitempty"`
	Providers []string `json:"providers"` // 可用的钱包连接器
	Amount    string   `json:"amount"`
	Tips      string   `json:"tips,omitempty"` // 空串表示尚未读取
	Sending   bool     `json:"sending"`
	Fetching  bool     `json:"fetching"`
	Notice    string   `json:"notice,omitempty"`
	Contract  string   `json:"contract"`
	Network   string   `json:"network"`
	LastTxURL string   `json:"last_tx_url,omitempty"`
}

// Button 一个可点击的操作
type Button struct {
	Label    string
	Disabled bool
}

// Page 由 State 推导出的展示模型
type Page struct {
	Title     string
	Connected bool
	Notice    string
	Footer    string
	Contract  string
	Network   string

	// 未连接
	Subtitle string
	Connect  []ConnectOption

	// 已连接
	Address    string
	Disconnect Button
	Amount     string
	Donate     Button
	Sending    bool
	Tips       string
	Refresh    Button
	LastTxURL  string

	// 有请求在途时页面自动刷新
	AutoReload bool
}

type ConnectOption struct {
	Provider string
	Label    string
}

// Build 纯函数: 相同的 State 总是得到相同的 Page
func Build(s State) Page {
	p := Page{
		Title:     Title,
		Connected: s.Connected,
		Notice:    s.Notice,
		Footer:    Footer,
		Contract:  s.Contract,
		Network:   s.Network,
	}

	if !s.Connected {
		p.Subtitle = Subtitle
		for _, name := range s.Providers {
			p.Connect = append(p.Connect, ConnectOption{Provider: name, Label: "Connect " + name})
		}
		return p
	}

	p.Address = s.Address
	p.Disconnect = Button{Label: "Disconnect"}
	p.Amount = s.Amount

	p.Sending = s.Sending
	p.Donate = Button{Label: "Donate", Disabled: s.Sending || s.Amount == ""}
	if s.Sending {
		p.Donate.Label = "Sending..."
	}

	p.Tips = s.Tips
	if p.Tips == "" {
		p.Tips = UnknownTip
	}
	p.Refresh = Button{Label: "Refresh", Disabled: s.Fetching}
	if s.Fetching {
		p.Refresh.Label = "Refreshing..."
	}

	p.LastTxURL = s.LastTxURL
	p.AutoReload = s.Sending || s.Fetching
	return p
}

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Render 输出完整 HTML
func Render(w io.Writer, s State) error {
	return pageTemplate.Execute(w, Build(s))
}

// RenderBytes 渲染到内存，便于先完成模板再写响应
func RenderBytes(s State) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
