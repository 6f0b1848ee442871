package notes

const WelcomeTitle = "Welcome 👋"

// WelcomeContent shows off every piece of supported markup.
const WelcomeContent = "# Markdown Notes\n" +
	"\n" +
	"- **Bold**, *italic*, and `code`\n" +
	"- Lists, links: [MD CheatSheet](https://www.markdownguide.org/)\n" +
	"\n" +
	"---\n" +
	"\n" +
	"```js\n" +
	"console.log('Hello Markdown');\n" +
	"```\n"
