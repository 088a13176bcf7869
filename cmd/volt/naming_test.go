package main

import "testing"

func TestPascal(t *testing.T) {
	cases := map[string]string{
		"post":      "Post",
		"blog_post": "BlogPost",
		"blog-post": "BlogPost",
		"blogPost":  "BlogPost",
		"BlogPost":  "BlogPost",
	}
	for in, want := range cases {
		if got := pascal(in); got != want {
			t.Errorf("pascal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnake(t *testing.T) {
	cases := map[string]string{
		"Post":              "post",
		"BlogPost":          "blog_post",
		"blog_post":         "blog_post",
		"add email to user": "add_email_to_user",
	}
	for in, want := range cases {
		if got := snake(in); got != want {
			t.Errorf("snake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTableName(t *testing.T) {
	cases := map[string]string{
		"Post":     "posts",
		"Category": "categories",
		"BlogPost": "blog_posts",
		"Person":   "people",
	}
	for in, want := range cases {
		if got := tableName(in); got != want {
			t.Errorf("tableName(%q) = %q, want %q", in, got, want)
		}
	}
}
