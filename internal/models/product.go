package models

// CategoryRef 商品所属分类摘要
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// Product 后端商品（客户端只读）
type Product struct {
	ID            int64        `json:"id"`
	Name          string       `json:"nome"`
	Description   string       `json:"descricao"`
	Price         Money        `json:"preco"`
	StockQuantity int          `json:"quantidadeEstoque"`
	Category      *CategoryRef `json:"categoria,omitempty"`
	Photo         string       `json:"foto,omitempty"`
}

// Category 商品分类
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// Customer 客户
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"telefone,omitempty"`
	CPF     string `json:"cpf,omitempty"`
	Address string `json:"endereco,omitempty"`
}

// User 后台用户（卖家账号）
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Name     string `json:"nome,omitempty"`
	Role     string `json:"perfil,omitempty"`
	Password string `json:"password,omitempty"`
}
