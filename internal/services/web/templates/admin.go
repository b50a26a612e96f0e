package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/queenofhearts/internal/services/admin"
	"github.com/louisbranch/queenofhearts/internal/services/player"
	routepath "github.com/louisbranch/queenofhearts/internal/services/web/routepath"
)

// AdminPage renders the admin console for view.
func AdminPage(page PageContext, view admin.View) templ.Component {
	return withLayout(page, AdminBody(page, view))
}

// AdminBody renders the admin console content placed inside <main>.
func AdminBody(page PageContext, view admin.View) templ.Component {
	return templ.Join(
		alertBanner(page),
		adminHeader(page),
		adminPlayers(page, view),
		adminAssign(page, view),
		adminTransfers(page, view),
	)
}

func adminHeader(page PageContext) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h1>`)
		h.text(page.t("web.admin.title"))
		h.raw(`</h1>`)
		h.formOpen(routepath.AdminReset, "admin-reset")
		h.button(page.t("web.common.reset"), "btn ghost")
		h.raw(`</form></section>`)
	})
}

func adminPlayers(page PageContext, view admin.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h2>`)
		h.text(page.t("web.admin.players"))
		h.raw(` <span class="badge neutral" id="player-count">`)
		h.text(page.t("web.admin.player_count", view.PlayerCount()))
		h.raw(`</span></h2><div id="players-table">`)
		if len(view.Players) == 0 {
			h.empty(page.t("web.common.empty_players"))
		} else {
			h.raw(`<table><thead><tr>`)
			for _, key := range []string{"web.common.name", "web.admin.wallet", "web.admin.games", "web.admin.last_activity"} {
				h.raw(`<th>`)
				h.text(page.t(key))
				h.raw(`</th>`)
			}
			h.raw(`</tr></thead><tbody>`)
			for _, row := range view.Players {
				h.raw(`<tr><td><strong>`)
				h.text(row.Name)
				h.raw(`</strong><p class="muted">`)
				h.text(row.Email)
				h.raw(`</p></td><td>`)
				h.text(page.formatMoney(row.Wallet))
				h.raw(`</td><td>`)
				h.text(strconv.Itoa(row.AccountCount))
				h.raw(`</td><td>`)
				if row.HasActivity {
					h.text(page.formatTime(row.LastActivity))
				} else {
					h.text(page.t("web.common.none"))
				}
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		h.raw(`</div><h3>`)
		h.text(page.t("web.admin.player_create"))
		h.raw(`</h3>`)
		h.formOpen(routepath.AdminPlayers, "create-player-form")
		h.input(page.t("web.common.name"), "name", "text", "", true)
		h.input(page.t("web.common.email"), "email", "email", "", true)
		h.button(page.t("web.admin.player_create"), "btn")
		h.raw(`</form></section>`)
	})
}

func adminAssign(page PageContext, view admin.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h2>`)
		h.text(page.t("web.admin.account_assign"))
		h.raw(`</h2>`)
		h.formOpen(routepath.AdminAccounts, "assign-game-form")
		h.raw(`<label>`)
		h.text(page.t("web.common.player"))
		h.raw(` <select name="player" id="game-player">`)
		if len(view.PlayerOptions) == 0 {
			h.raw(`<option value="" disabled selected>`)
			h.text(page.t("web.common.empty_players"))
			h.raw(`</option>`)
		}
		for i, opt := range view.PlayerOptions {
			h.option(strconv.FormatInt(opt.ID, 10), opt.Label, i == 0)
		}
		h.raw(`</select></label><label>`)
		h.text(page.t("web.common.game"))
		h.raw(` <input type="text" name="game" list="game-catalog" required></label><datalist id="game-catalog">`)
		for _, game := range player.Games {
			h.option(game, game, false)
		}
		h.raw(`</datalist>`)
		h.input(page.t("web.common.username"), "username", "text", "", true)
		h.button(page.t("web.admin.account_submit"), "btn")
		h.raw(`</form></section>`)
	})
}

func adminTransfers(page PageContext, view admin.View) templ.Component {
	return markup(func(h *htmlWriter) {
		h.raw(`<section><h2>`)
		h.text(page.t("web.admin.transfers"))
		h.raw(` <span class="badge neutral" id="pending-count">`)
		h.text(page.t("web.admin.pending_count", view.PendingCount))
		h.raw(`</span></h2><div id="transfers-table">`)
		if len(view.Transfers) == 0 {
			h.empty(page.t("web.admin.transfers_empty"))
			h.raw(`</div></section>`)
			return
		}
		h.raw(`<table><thead><tr>`)
		for _, key := range []string{"web.common.player", "web.common.amount", "web.common.status", "web.common.requested", "web.common.approved", "web.admin.action"} {
			h.raw(`<th>`)
			h.text(page.t(key))
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, row := range view.Transfers {
			h.raw(`<tr><td><strong>`)
			h.text(row.PlayerName)
			h.raw(`</strong><p class="muted">`)
			h.text(row.Game + " • " + row.Username)
			h.raw(`</p></td>`)
			h.component(transferCells(page, row.Transfer))
			h.raw(`<td>`)
			if row.Pending() {
				h.formOpen(routepath.AdminTransferApprove(row.Transfer.ID), "")
				h.button(page.t("web.admin.approve"), "btn small")
				h.raw(`</form>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div></section>`)
	})
}
