package template

// SlugVendorNames is the hand-curated association between local template
// slugs and WABA template names whose naming diverges completely from ours.
// Consulted as the first matching tier before any name comparison.
var SlugVendorNames = map[string]string{
	"package_arrival":       "encomenda_management_5",
	"visitor_authorization": "autorizacao_visitante_portaria",
	"assembly_notice":       "convocacao_assembleia_condominio",
	"payment_overdue":       "cobranca_atraso_condominio",
}

// DefaultContents holds the built-in content for each seeded template slug.
// Reset-to-default restores from here.
var DefaultContents = map[string]string{
	"package_arrival":       "Olá {nome}! 📦\n\nChegou uma encomenda para você na portaria do *{condominio}*.\n\nRetire com o porteiro apresentando um documento.",
	"visitor_authorization": "Olá {nome}!\n\nO visitante *{visitante}* está na portaria do {condominio}.\n\nResponda para autorizar ou recusar a entrada.",
	"invoice_generated":     "Olá {nome}!\n\nSeu boleto do condomínio *{condominio}* foi gerado.\n\nValor: {valor}\nVencimento: {vencimento}",
	"assembly_notice":       "Prezado(a) {nome},\n\nConvocação para assembleia do *{condominio}*:\n\nData: {data}\nLocal: {local}\nPauta: {pauta}",
	"maintenance_notice":    "Aviso do {condominio}:\n\n*{titulo}*\n\n{descricao}\n\nPeríodo: {periodo}",
	"payment_overdue":       "Olá {nome},\n\nConsta em aberto o boleto do *{condominio}* com vencimento em {vencimento}.\n\nValor atualizado: {valor}",
}

// DefaultVariableValues feeds the preview renderer when the caller supplies
// no value for a placeholder.
var DefaultVariableValues = map[string]string{
	"nome":       "João Silva",
	"condominio": "Residencial Jardim das Flores",
	"visitante":  "Maria Souza",
	"valor":      "R$ 450,00",
	"vencimento": "10/10/2026",
	"data":       "15/09/2026",
	"local":      "Salão de festas",
	"pauta":      "Prestação de contas",
	"titulo":     "Manutenção do elevador",
	"descricao":  "O elevador social ficará indisponível para manutenção preventiva.",
	"periodo":    "08h às 12h",
	"bloco":      "Bloco A",
	"unidade":    "Apto 101",
	"codigo":     "483921",
	"protocolo":  "2026-000123",
}

// genericExamples fills positional slots beyond the declared parameter list
// when previewing externally authored templates.
var genericExamples = []string{
	"João Silva",
	"Residencial Jardim das Flores",
	"Bloco A",
	"Apto 101",
	"10/10/2026",
}
