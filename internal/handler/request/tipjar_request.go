package request

// ConnectRequest 页面表单与 JSON 共用
type ConnectRequest struct {
	Provider string `json:"provider" form:"provider" binding:"required,alphanum,max=32"`
}

// DonateRequest 金额保持原始文本，由服务层解析，空串和非数字都属于金额错误而不是参数错误
type DonateRequest struct {
	Amount string `json:"amount" form:"amount"`
}
