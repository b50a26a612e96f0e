package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/queenofhearts/internal/ledger"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
)

// PlayerPage renders the player wallet page for view.
func PlayerPage(page PageContext, view player.View) templ.Component {
	return withLayout(page, PlayerBody(page, view))
}

// PlayerBody renders the player page content placed inside <main>.
func PlayerBody(page PageContext, view player.View) templ.Component {
	return templ.Join(
		alertBanner(page),
		playerSession(page, view),
		playerWallet(page, view),
		playerSignup(page),
		playerGameAccounts(page, view),
		playerTransferForm(page, view),
		playerTransfers(page, view),
		playerActivity(page, view),
	)
}

func playerSession(page PageContext, view player.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section id="session"><h1>`)
		h.text(page.t("web.player.title"))
		h.raw(`</h1>`)
		h.raw(`<form method="post" action="`)
		h.url(routepath.PlayerLogin)
		h.raw(`" hx-post="`)
		h.url(routepath.PlayerLogin)
		h.raw(`" hx-target="#main" hx-trigger="change, submit" id="player-login-form"><select name="player" id="player-login">`)
		if len(view.Options) == 0 {
			h.raw(`<option value="" disabled selected>`)
			h.text(page.t("web.common.empty_players"))
			h.raw(`</option>`)
		}
		for _, opt := range view.Options {
			h.option(strconv.FormatInt(opt.ID, 10), opt.Label, opt.Selected)
		}
		h.raw(`</select>`)
		h.button(page.t("web.player.switch"), "btn small")
		h.raw(`</form><p>`)
		h.text(page.t("web.player.login"))
		h.raw(` <strong id="active-player-label">`)
		if view.Guest() {
			h.text(page.t("web.player.guest"))
		} else {
			h.text(view.Active.Name)
		}
		h.raw(`</strong></p>`)
		h.formOpen(routepath.PlayerReset, "player-reset")
		h.button(page.t("web.common.reset"), "btn ghost")
		h.raw(`</form></section>`)
	})
}

func playerWallet(page PageContext, view player.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section id="wallet"><p id="wallet-owner">`)
		if view.Guest() {
			h.text(page.t("web.player.wallet_balance"))
		} else {
			h.text(page.t("web.player.wallet_owner", view.Active.Name))
		}
		h.raw(`</p><p id="wallet-balance" class="balance">`)
		var wallet int64
		if !view.Guest() {
			wallet = view.Active.Wallet
		}
		h.text(page.formatMoney(wallet))
		h.raw(`</p><h2>`)
		h.text(page.t("web.player.deposit"))
		h.raw(`</h2>`)
		h.formOpen(routepath.PlayerDeposits, "deposit-form")
		h.input(page.t("web.common.amount"), "amount", "number", "", true)
		h.raw(`<label>`)
		h.text(page.t("web.player.method"))
		h.raw(` <select name="method">`)
		for i, method := range view.Methods {
			h.option(method, method, i == 0)
		}
		h.raw(`</select></label>`)
		h.button(page.t("web.player.deposit_submit"), "btn")
		h.raw(`</form></section>`)
	})
}

func playerSignup(page PageContext) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section id="signup"><h2>`)
		h.text(page.t("web.player.signup"))
		h.raw(`</h2>`)
		h.formOpen(routepath.PlayerSignup, "signup-form")
		h.input(page.t("web.common.name"), "name", "text", "", true)
		h.input(page.t("web.common.email"), "email", "email", "", true)
		h.button(page.t("web.player.signup_submit"), "btn")
		h.raw(`</form></section>`)
	})
}

func playerGameAccounts(page PageContext, view player.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h2>`)
		h.text(page.t("web.player.accounts"))
		h.raw(`</h2><div id="game-accounts">`)
		switch {
		case view.Guest():
			h.empty(page.t("web.player.no_player"))
		case len(view.Active.GameAccounts) == 0:
			h.empty(page.t("web.player.accounts_empty"))
		default:
			for _, acct := range view.Active.GameAccounts {
				h.component(gameCard(page, acct))
			}
		}
		h.raw(`</div><h3>`)
		h.text(page.t("web.player.account_create"))
		h.raw(`</h3>`)
		h.formOpen(routepath.PlayerAccounts, "create-game-form")
		h.raw(`<label>`)
		h.text(page.t("web.common.game"))
		h.raw(` <select name="game" id="new-game-name" hx-get="`)
		h.url(routepath.Player)
		h.raw(`" hx-target="#main" hx-trigger="change">`)
		for _, game := range view.Games {
			h.option(game, game, game == view.SuggestionGame)
		}
		h.raw(`</select></label>`)
		h.input(page.t("web.common.username"), "username", "text", view.Suggestion, false)
		h.button(page.t("web.player.account_submit"), "btn")
		h.raw(`</form></section>`)
	})
}

func gameCard(page PageContext, acct ledger.GameAccount) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<div class="game-card"><div class="card-header"><div><p class="eyebrow">`)
		h.text(acct.Game)
		h.raw(`</p><h4>`)
		h.text(acct.Username)
		h.raw(`</h4></div><span class="badge neutral">`)
		h.text(page.t("web.player.balance"))
		h.raw(`</span></div><p>`)
		h.text(page.t("web.player.credits"))
		h.raw(`: <strong>`)
		h.text(page.formatMoney(acct.Balance))
		h.raw(`</strong></p></div>`)
	})
}

func playerTransferForm(page PageContext, view player.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section id="transfer"><h2>`)
		h.text(page.t("web.player.transfer"))
		h.raw(`</h2>`)
		h.formOpen(routepath.PlayerTransfers, "transfer-form")
		h.raw(`<label>`)
		h.text(page.t("web.player.transfer_account"))
		h.raw(` <select name="game" id="transfer-game">`)
		if view.Guest() || len(view.Active.GameAccounts) == 0 {
			h.raw(`<option value="" disabled selected>`)
			h.text(page.t("web.player.transfer_no_accounts"))
			h.raw(`</option>`)
		} else {
			for i, acct := range view.Active.GameAccounts {
				h.option(strconv.FormatInt(acct.ID, 10), acct.Game+" • "+acct.Username, i == 0)
			}
		}
		h.raw(`</select></label>`)
		h.input(page.t("web.common.amount"), "amount", "number", "", true)
		h.button(page.t("web.player.transfer_submit"), "btn")
		h.raw(`</form></section>`)
	})
}

func playerTransfers(page PageContext, view player.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h2>`)
		h.text(page.t("web.player.transfers"))
		h.raw(`</h2><div id="player-transfers">`)
		switch {
		case view.Guest():
			h.empty(page.t("web.player.no_player"))
		case len(view.Transfers) == 0:
			h.empty(page.t("web.player.transfers_empty"))
		default:
			h.raw(`<table><thead><tr>`)
			for _, key := range []string{"web.common.player", "web.common.amount", "web.common.status", "web.common.requested", "web.common.approved"} {
				h.raw(`<th>`)
				h.text(page.t(key))
				h.raw(`</th>`)
			}
			h.raw(`</tr></thead><tbody>`)
			for _, row := range view.Transfers {
				h.raw(`<tr><td><strong>`)
				h.text(view.Active.Name)
				h.raw(`</strong><p class="muted">`)
				h.text(row.Game)
				h.raw(`</p></td>`)
				h.component(transferCells(page, row.Transfer))
				h.raw(`</tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		h.raw(`</div></section>`)
	})
}

// transferCells renders the amount, status, requested and approved cells.
func transferCells(page PageContext, t ledger.Transfer) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<td>`)
		h.text(page.formatMoney(t.Amount))
		h.raw(`</td><td><span class="`)
		if t.Status == ledger.TransferApproved {
			h.raw(`badge`)
		} else {
			h.raw(`badge neutral`)
		}
		h.raw(`">`)
		h.text(page.t("web.status." + string(t.Status)))
		h.raw(`</span></td><td>`)
		h.text(page.formatTime(t.RequestedAt))
		h.raw(`</td><td>`)
		if t.ApprovedAt != nil {
			h.text(page.formatTime(*t.ApprovedAt))
		} else {
			h.text(page.t("web.common.none"))
		}
		h.raw(`</td>`)
	})
}

func playerActivity(page PageContext, view player.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h2>`)
		h.text(page.t("web.player.activity"))
		h.raw(`</h2><ul id="player-activity">`)
		var entries []ledger.ActivityEntry
		if !view.Guest() {
			entries = view.Active.Activity
		}
		if len(entries) == 0 {
			h.raw(`<li class="muted">`)
			h.text(page.t("web.player.activity_empty"))
			h.raw(`</li>`)
		}
		for _, entry := range entries {
			h.raw(`<li><span>`)
			h.text(entry.Message)
			h.raw(`</span><time datetime="`)
			h.text(entry.Time.UTC().Format("2006-01-02T15:04:05.000Z"))
			h.raw(`">`)
			h.text(page.formatTime(entry.Time))
			h.raw(`</time></li>`)
		}
		h.raw(`</ul></section>`)
	})
}
