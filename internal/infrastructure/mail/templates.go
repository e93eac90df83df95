package mail

import "fmt"

func verificationBody(link string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #2563EB; text-align: center;">Welcome to Spar-Shoe!</h2>
	<p>Thank you for creating an account with <strong>Spar-Shoe</strong>.</p>
	<p>To keep your account secure, please verify your email address by clicking the link below:</p>
	<div style="text-align: center; margin: 35px 0;">
		<a href="%s" style="background-color: #2563EB; color: white; padding: 14px 28px; text-decoration: none; border-radius: 8px; font-weight: bold;">Verify Email Address</a>
	</div>
	<p style="font-size: 14px; color: #666;">If you did not request this verification, you can safely ignore this email. Your account will remain inactive until your email is verified.</p>
	<p style="font-size: 14px; color: #333;">Thank you,<br><strong>Spar-Shoe Team</strong></p>
</div>`, link)
}

func resetBody(link string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<p>You requested a password reset. Click this link to reset your password within one hour:</p>
	<p><a href="%s">Reset Password</a></p>
	<p style="font-size: 14px; color: #666;">If you did not request a reset, you can ignore this email; your password is unchanged.</p>
</div>`, link)
}
