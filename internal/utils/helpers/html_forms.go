package helpers

import (
	"fmt"
	"html"
)

// BuildPostHTML собирает письмо о новом посте: заголовок, анонс, кнопка и ссылка отписки.
// Все подстановки экранируются.
func BuildPostHTML(title, excerpt, link, unsubscribeLink string) string {
	link = html.EscapeString(link)
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif;background:#f7f7f7;padding:0;margin:0;">
    <table width="100%%" bgcolor="#f7f7f7" cellpadding="0" cellspacing="0" style="padding:30px 0;">
      <tr>
        <td align="center">
          <table width="600" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:10px;box-shadow:0 2px 8px #eee;">
            <tr>
              <td>
                <h2 style="color:#1d1d1f;margin-top:0;">%s</h2>
                <p style="font-size:16px;color:#333;">%s</p>
                <p>
                  <a href="%s" style="display:inline-block;padding:12px 24px;background:#e0483e;color:#fff;text-decoration:none;border-radius:5px;font-weight:bold;margin-top:16px;">
                    Читать пост
                  </a>
                </p>
                <hr style="border:none;border-top:1px solid #eee;margin:32px 0 12px 0;">
                <p style="font-size:12px;color:#999;margin:0;">
                  Если кнопка не работает, скопируйте ссылку: %s
                </p>
                <p style="font-size:12px;color:#999;margin:8px 0 0 0;">
                  <a href="%s" style="color:#999;">Отписаться от рассылки</a>
                </p>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, html.EscapeString(title), html.EscapeString(excerpt), link, link, html.EscapeString(unsubscribeLink))
}

// AppendUnsubscribe дописывает к телу рассылки ссылку отписки.
func AppendUnsubscribe(body, unsubscribeLink string) string {
	return body + `<br><br><a href="` + html.EscapeString(unsubscribeLink) + `">Unsubscribe</a>`
}
