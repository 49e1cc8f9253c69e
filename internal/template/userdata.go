package template

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"al.essio.dev/pkg/shellescape"

	"nathanbeddoewebdev/tspec/internal/domain"
)

var loginUserPattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

var userDataTmpl = template.Must(template.New("userdata").
	Funcs(template.FuncMap{"quote": shellescape.Quote}).
	Parse(userDataTemplate))

// RenderUserData renders a first-boot script that sets up the login user
// described by creds: the account itself, its password and its sudo rule.
func RenderUserData(creds domain.LoginCredentials) (string, error) {
	if !loginUserPattern.MatchString(creds.User) {
		return "", fmt.Errorf("invalid login user %q", creds.User)
	}
	if strings.ContainsAny(creds.Password, "\r\n") {
		return "", fmt.Errorf("login password for %q must not contain line breaks", creds.User)
	}

	var buf bytes.Buffer
	if err := userDataTmpl.Execute(&buf, creds); err != nil {
		return "", fmt.Errorf("render user data template: %w", err)
	}
	return buf.String(), nil
}

// userDataTemplate runs as root on first boot. Non-root users get a home
// directory, root's authorized SSH keys and a sudoers drop-in that asks for
// the password only when AuthenticateSudo is set.
const userDataTemplate = `#!/bin/bash
set -euo pipefail

LOGIN_USER={{ quote .User }}

log() { echo "[tspec] $*" >&2; }
{{ if ne .User "root" }}
if ! id "$LOGIN_USER" >/dev/null 2>&1; then
  useradd --create-home --shell /bin/bash "$LOGIN_USER"
fi

if [ -f /root/.ssh/authorized_keys ]; then
  install -d -m 700 -o "$LOGIN_USER" -g "$LOGIN_USER" "/home/$LOGIN_USER/.ssh"
  install -m 600 -o "$LOGIN_USER" -g "$LOGIN_USER" /root/.ssh/authorized_keys "/home/$LOGIN_USER/.ssh/authorized_keys"
fi

cat > "/etc/sudoers.d/90-$LOGIN_USER" << SUDOEOF
$LOGIN_USER ALL=(ALL) {{ if not .AuthenticateSudo }}NOPASSWD: {{ end }}ALL
SUDOEOF
chmod 440 "/etc/sudoers.d/90-$LOGIN_USER"
{{ end }}
{{- if .Password }}
printf '%s:%s\n' "$LOGIN_USER" {{ quote .Password }} | chpasswd
{{ end }}
log "login user $LOGIN_USER configured"
`
