package i18n

var messages = map[string]map[string]string{
	LocalePTBR: {
		"common.success":                "Sucesso",
		"error.bad_request":             "Requisição inválida.",
		"error.not_found":               "Recurso não encontrado.",
		"error.internal":                "Erro interno. Tente novamente.",
		"error.too_many_requests":       "Muitas tentativas. Aguarde alguns minutos.",
		"error.rate_limit_unavailable":  "Limite de requisições indisponível no momento.",
		"error.store_unavailable":       "Não foi possível salvar os dados locais.",
		"error.token_invalid":           "Sessão inválida ou expirada. Faça login novamente.",
		"error.credentials_required":    "Informe usuário e senha.",
		"error.invalid_credentials":     "Usuário ou senha inválidos.",
		"error.backend_unreachable":     "Servidor não respondeu. Verifique se o backend está rodando.",
		"error.login_unexpected":        "Erro ao tentar fazer login.",
		"error.logout_not_confirmed":    "Confirme a saída para encerrar a sessão.",
		"error.product_invalid":         "Produto inválido.",
		"error.cart_persist_failed":     "Não foi possível atualizar o carrinho.",
		"error.not_authenticated":       "Faça login para finalizar o pedido.",
		"error.cart_empty":              "Seu carrinho está vazio.",
		"error.customer_required":       "Selecione um cliente antes de confirmar o pedido.",
		"error.payment_method_invalid":  "Forma de pagamento inválida.",
		"error.order_in_flight":         "O pedido já está sendo enviado.",
		"error.order_submit_failed":     "Erro ao enviar o pedido. Tente novamente.",
		"error.category_name_required":  "Informe o nome da categoria.",
		"error.customer_name_required":  "Informe o nome do cliente.",
		"error.username_required":       "Informe o nome de usuário.",
		"error.password_required":       "Informe a senha.",
		"error.invalid_id":              "Identificador inválido.",
		"error.catalog_unavailable":     "Não foi possível carregar os dados do servidor.",
		"error.chat_message_empty":      "Digite uma mensagem.",
		"error.chatbot_failed":          "Erro ao conectar com o chatbot. Tente novamente mais tarde.",
		"message.logout_success":        "Sessão encerrada.",
		"message.order_confirmed":       "Pedido #%s confirmado.",
		"message.order_received":        "Pedido enviado com sucesso.",
		"error.order_cart_clear_failed": "Pedido confirmado, mas o carrinho não pôde ser limpo. Limpe-o antes de um novo pedido.",
	},
	LocaleEN: {
		"common.success":                "Success",
		"error.bad_request":             "Invalid request.",
		"error.not_found":               "Resource not found.",
		"error.internal":                "Internal error. Please try again.",
		"error.too_many_requests":       "Too many attempts. Please wait a few minutes.",
		"error.rate_limit_unavailable":  "Rate limiting is unavailable right now.",
		"error.store_unavailable":       "Could not save local data.",
		"error.token_invalid":           "Session invalid or expired. Please sign in again.",
		"error.credentials_required":    "Username and password are required.",
		"error.invalid_credentials":     "Invalid username or password.",
		"error.backend_unreachable":     "The server did not respond. Check that the backend is running.",
		"error.login_unexpected":        "Could not sign in.",
		"error.logout_not_confirmed":    "Confirm to sign out.",
		"error.product_invalid":         "Invalid product.",
		"error.cart_persist_failed":     "Could not update the cart.",
		"error.not_authenticated":       "Sign in to place the order.",
		"error.cart_empty":              "Your cart is empty.",
		"error.customer_required":       "Select a customer before confirming the order.",
		"error.payment_method_invalid":  "Invalid payment method.",
		"error.order_in_flight":         "The order is already being submitted.",
		"error.order_submit_failed":     "Could not submit the order. Please try again.",
		"error.category_name_required":  "Category name is required.",
		"error.customer_name_required":  "Customer name is required.",
		"error.username_required":       "Username is required.",
		"error.password_required":       "Password is required.",
		"error.invalid_id":              "Invalid identifier.",
		"error.catalog_unavailable":     "Could not load data from the server.",
		"error.chat_message_empty":      "Type a message.",
		"error.chatbot_failed":          "Could not reach the chatbot. Please try again later.",
		"message.logout_success":        "Signed out.",
		"message.order_confirmed":       "Order #%s confirmed.",
		"message.order_received":        "Order sent successfully.",
		"error.order_cart_clear_failed": "Order confirmed, but the cart could not be cleared. Clear it before placing a new order.",
	},
}
