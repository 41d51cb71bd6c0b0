package fallback

import (
	"strings"

	"github.com/jonathan/roadmap-planner/internal/types"
)

// slot is a position inside a phase that rules append tasks to. Phases are
// assembled by walking their slots in layout order.
type slot int

const (
	slotProfiles slot = iota
	slotRemedial
	slotLearning
	slotEvents
	slotResearch

	slotCommunity
	slotProjects
	slotPractice
	slotExtras

	slotCapstone
	slotAdvanced
	slotApplications
	slotInterviews

	slotBackup
	slotContribution
	slotReflection
	slotMentorship
)

// contribution is what one rule adds to the roadmap.
type contribution struct {
	tasks     map[slot][]string
	resources []types.Resource
	badges    []types.Badge
}

// rule is evaluated independently of every other rule. build is only called
// when applies reports true.
type rule struct {
	name    string
	applies func(types.Profile) bool
	build   func(types.Profile) contribution
}

func always(types.Profile) bool { return true }

func static(c contribution) func(types.Profile) contribution {
	return func(types.Profile) contribution { return c }
}

var (
	webSkills    = []string{"JavaScript", "HTML/CSS", "React", "Node.js", "Web Development"}
	mobileSkills = []string{"Mobile Development", "React Native", "Flutter", "Swift", "Kotlin"}
	serverSkills = []string{"Node.js", "Python", "Java", "C#", "Go", "C++"}
)

func frontendTarget(p types.Profile) bool { return p.RoleContains("frontend", "full stack") }
func backendTarget(p types.Profile) bool  { return p.RoleContains("backend", "full stack") }
func dataTarget(p types.Profile) bool     { return p.RoleContains("data science") }
func mlTarget(p types.Profile) bool       { return p.RoleContains("machine learning") }
func mobileTarget(p types.Profile) bool   { return p.RoleContains("mobile") }

func webGap(p types.Profile) bool    { return frontendTarget(p) && !p.HasSkill(webSkills...) }
func pythonGap(p types.Profile) bool { return (dataTarget(p) || mlTarget(p)) && !p.HasSkill("Python") }
func mobileGap(p types.Profile) bool { return mobileTarget(p) && !p.HasSkill(mobileSkills...) }
func serverGap(p types.Profile) bool { return backendTarget(p) && !p.HasSkill(serverSkills...) }

func anyGap(p types.Profile) bool {
	return webGap(p) || pythonGap(p) || mobileGap(p) || serverGap(p)
}

func anyRole(p types.Profile) bool {
	return frontendTarget(p) || backendTarget(p) || dataTarget(p) || mlTarget(p) || mobileTarget(p)
}

// beginner covers the two lowest onboarding experience options and the
// detailed questionnaire's Beginner level.
func beginner(p types.Profile) bool {
	switch strings.ToLower(p.Level()) {
	case "complete-beginner", "some-basics", "beginner":
		return true
	}
	return false
}

func highHours(p types.Profile) bool {
	h := p.Hours()
	return strings.Contains(h, "20+") || strings.Contains(h, "15-20")
}

func flag(b *bool) bool { return b != nil && *b }

var rules = []rule{
	{
		name:    "core",
		applies: always,
		build: static(contribution{
			tasks: map[slot][]string{
				slotEvents:     {"Participate in coding challenges and online competitions"},
				slotCommunity:  {"Excel in academic coursework and maintain strong GPA", "Join tech clubs (GDSC, Blueprint, Women in STEM)"},
				slotPractice:   {"Learn version control best practices and collaboration", "Update portfolio with new projects and case studies"},
				slotCapstone:   {"Build capstone project demonstrating advanced skills", "Polish resume with quantified achievements and get reviews", "Create comprehensive portfolio with 3-5 best projects", "Master data structures and algorithms fundamentals"},
				slotInterviews: {"Practice technical interviews with Pramp and peers", "Prepare behavioral interview stories using STAR method"},
				slotBackup:     {"Apply to additional companies and backup options", "Explore volunteer development opportunities with nonprofits"},
				slotReflection: {"Build intensive 2-3 week capstone project", "Reflect on journey and create summer learning plan", "Update all profiles and prepare for next application cycle"},
			},
			resources: coreResources,
			badges:    coreBadges,
		}),
	},

	// Asset rules
	{
		name:    "resume-linkedin",
		applies: always,
		build: func(p types.Profile) contribution {
			if flag(p.HasResumeLinkedIn) {
				return contribution{tasks: map[slot][]string{slotProfiles: {
					"Refresh LinkedIn headline and summary with your internship goals",
					"Tailor your existing resume to internship postings",
				}}}
			}
			return contribution{tasks: map[slot][]string{slotProfiles: {
				"Set up LinkedIn profile with professional photo and summary",
				"Draft first version of technical resume",
			}}}
		},
	},
	{
		name:    "portfolio-github",
		applies: always,
		build: func(p types.Profile) contribution {
			if flag(p.HasPortfolioGitHub) {
				return contribution{tasks: map[slot][]string{slotProfiles: {
					"Polish GitHub profile README and pin your best repositories",
					"Enhance portfolio with detailed project case studies",
				}}}
			}
			portfolio := "Create simple portfolio using Bolt.new or Notion"
			if p.HasSkill(webSkills...) {
				portfolio = "Build portfolio website using React/Next.js"
			}
			return contribution{tasks: map[slot][]string{slotProfiles: {
				"Create professional GitHub profile with README",
				portfolio,
			}}}
		},
	},

	// Skill-gap rules
	{
		name:    "gap-web",
		applies: webGap,
		build: static(contribution{
			tasks: map[slot][]string{slotRemedial: {
				"Learn HTML, CSS, and JavaScript fundamentals",
				"Build 3 simple web projects (calculator, todo, weather app)",
			}},
			resources: []types.Resource{
				res("res-gap-web", "The Odin Project", "https://www.theodinproject.com/", "Web Development", "Free full-stack curriculum starting from HTML and CSS"),
			},
		}),
	},
	{
		name:    "gap-python",
		applies: pythonGap,
		build: static(contribution{
			tasks: map[slot][]string{slotRemedial: {
				"Learn Python fundamentals (variables, loops, functions)",
				"Complete Python basics course (Codecademy/freeCodeCamp)",
			}},
			resources: []types.Resource{
				res("res-gap-python", "The Python Tutorial", "https://docs.python.org/3/tutorial/", "CS Learning", "Official introduction to Python"),
			},
		}),
	},
	{
		name:    "gap-mobile",
		applies: mobileGap,
		build: static(contribution{
			tasks: map[slot][]string{slotRemedial: {
				"Learn mobile development basics (React Native or Flutter)",
				"Build your first mobile app prototype",
			}},
		}),
	},
	{
		name:    "gap-server",
		applies: serverGap,
		build: static(contribution{
			tasks: map[slot][]string{slotRemedial: {
				"Learn a server-side language (Node.js, Python or Java)",
				"Build a small command-line tool that reads and writes files",
			}},
		}),
	},
	{
		name:    "foundation",
		applies: func(p types.Profile) bool { return !anyGap(p) },
		build: static(contribution{
			tasks: map[slot][]string{slotRemedial: {
				"Master Git and GitHub workflow",
				"Learn your target programming language fundamentals",
			}},
		}),
	},

	// Role rules
	{
		name:    "frontend",
		applies: frontendTarget,
		build: static(contribution{
			tasks: map[slot][]string{
				slotProjects: {"Learn React.js and build interactive web applications", "Master responsive design and CSS frameworks", "Build a portfolio project with API integration"},
				slotAdvanced: {"Master advanced React patterns and state management", "Learn performance optimization and testing frameworks"},
			},
			resources: []types.Resource{
				res("res-fe-1", "React Documentation", "https://react.dev/", "Web Development", "Official React learning resources"),
				res("res-fe-2", "MDN Web Docs", "https://developer.mozilla.org/", "Web Development", "Comprehensive web development reference"),
				res("res-fe-3", "Frontend Mentor", "https://www.frontendmentor.io/", "Web Development", "Real-world frontend challenges"),
				res("res-fe-4", "CSS-Tricks", "https://css-tricks.com/", "Web Development", "CSS tutorials and best practices"),
			},
			badges: []types.Badge{
				badge("badge-fe-1", "React Developer", "Built a React application", "Code", 150),
				badge("badge-fe-2", "Web Master", "Created responsive web designs", "Monitor", 125),
			},
		}),
	},
	{
		name:    "backend",
		applies: backendTarget,
		build: static(contribution{
			tasks: map[slot][]string{
				slotProjects: {"Learn Node.js/Express or Django framework", "Build REST APIs and work with databases (PostgreSQL/MongoDB)", "Create a full-stack application with authentication"},
				slotAdvanced: {"Learn system design basics and scalability concepts", "Master cloud platforms (AWS/GCP/Azure) and DevOps"},
			},
			resources: []types.Resource{
				res("res-be-1", "Node.js Documentation", "https://nodejs.org/en/docs/", "Backend Development", "Server-side JavaScript runtime"),
				res("res-be-2", "PostgreSQL Tutorial", "https://www.postgresql.org/docs/", "Database", "Advanced database management"),
				res("res-be-3", "REST API Design", "https://restfulapi.net/", "Backend Development", "API design best practices"),
				res("res-be-4", "System Design Primer", "https://github.com/donnemartin/system-design-primer", "Backend Development", "Learn system design concepts"),
			},
			badges: []types.Badge{
				badge("badge-be-1", "API Builder", "Created REST APIs", "Server", 150),
				badge("badge-be-2", "Database Expert", "Worked with databases", "Database", 125),
			},
		}),
	},
	{
		name:    "datascience",
		applies: dataTarget,
		build: static(contribution{
			tasks: map[slot][]string{
				slotProjects: {"Learn pandas, numpy, and data visualization (matplotlib/seaborn)", "Complete Kaggle Learn courses and first competition", "Build data analysis project with real datasets"},
				slotAdvanced: {"Complete advanced statistics and probability courses", "Practice SQL queries for analytics interviews"},
			},
			resources: []types.Resource{
				res("res-ds-1", "Kaggle", "https://kaggle.com/", "Data Science", "Data science competitions and datasets"),
				res("res-ds-2", "Pandas Documentation", "https://pandas.pydata.org/", "Data Science", "Data manipulation and analysis"),
			},
			badges: []types.Badge{
				badge("badge-ds-1", "Data Scientist", "Completed data analysis project", "BarChart", 175),
			},
		}),
	},
	{
		name:    "ml",
		applies: mlTarget,
		build: static(contribution{
			tasks: map[slot][]string{
				slotProjects: {"Study supervised learning fundamentals (regression, classification)", "Train and evaluate a model with scikit-learn"},
				slotAdvanced: {"Learn TensorFlow/PyTorch and build ML models", "Deploy a trained model behind a simple API"},
			},
			resources: []types.Resource{
				res("res-ml-1", "TensorFlow", "https://tensorflow.org/", "Machine Learning", "Machine learning framework"),
				res("res-ml-2", "Coursera ML Course", "https://www.coursera.org/learn/machine-learning", "Machine Learning", "Andrew Ng's machine learning course"),
				res("res-ml-3", "PyTorch Tutorials", "https://pytorch.org/tutorials/", "Machine Learning", "Hands-on deep learning tutorials"),
			},
			badges: []types.Badge{
				badge("badge-ml-1", "ML Engineer", "Built machine learning model", "Brain", 200),
			},
		}),
	},
	{
		name:    "mobile",
		applies: mobileTarget,
		build: static(contribution{
			tasks: map[slot][]string{
				slotProjects: {"Master React Native or Flutter development", "Learn mobile UI/UX design principles", "Build and deploy mobile app to app stores"},
				slotAdvanced: {"Learn app performance profiling and offline storage", "Add automated tests and CI to your mobile app"},
			},
			resources: []types.Resource{
				res("res-mobile-1", "React Native Docs", "https://reactnative.dev/", "Mobile Development", "Cross-platform mobile development"),
				res("res-mobile-2", "Flutter Documentation", "https://flutter.dev/", "Mobile Development", "Google's mobile development framework"),
				res("res-mobile-3", "Material Design", "https://m3.material.io/", "Mobile Development", "Material Design principles"),
			},
			badges: []types.Badge{
				badge("badge-mobile-1", "Mobile Developer", "Published mobile application", "Smartphone", 175),
			},
		}),
	},
	{
		name:    "general",
		applies: func(p types.Profile) bool { return !anyRole(p) },
		build: static(contribution{
			tasks: map[slot][]string{
				slotProjects: {"Learn relevant frameworks for your target role", "Build meaningful projects showcasing your skills", "Contribute to open source projects in your domain"},
				slotAdvanced: {"Learn cloud platforms and modern development tools", "Build projects using industry-standard practices"},
			},
			resources: []types.Resource{
				res("res-gen-1", "The Missing Semester", "https://missing.csail.mit.edu/", "CS Learning", "Shell, editors, version control and tooling"),
			},
		}),
	},

	// Experience rule
	{
		name:    "experience",
		applies: always,
		build: func(p types.Profile) contribution {
			if beginner(p) {
				return contribution{
					tasks: map[slot][]string{slotLearning: {
						"Complete Harvard CS50 or similar intro CS course",
						"Join beginner-friendly coding communities",
					}},
					resources: []types.Resource{
						res("res-beginner-1", "Harvard CS50", "https://cs50.harvard.edu/", "CS Learning", "Introduction to Computer Science"),
						res("res-beginner-2", "freeCodeCamp", "https://freecodecamp.org/", "CS Learning", "Free coding bootcamp with certificates"),
						res("res-beginner-3", "Codecademy", "https://codecademy.com/", "CS Learning", "Interactive coding lessons"),
					},
				}
			}
			return contribution{
				tasks: map[slot][]string{slotLearning: {
					"Review and strengthen programming fundamentals",
					"Start contributing to open source projects",
				}},
				resources: []types.Resource{
					res("res-advanced-1", "Algorithms Specialization", "https://www.coursera.org/specializations/algorithms", "CS Learning", "Stanford algorithms specialization"),
					res("res-advanced-2", "System Design Interview", "https://github.com/checkcheckzz/system-design-interview", "CS Learning", "System design preparation"),
				},
			}
		},
	},

	// Time rule
	{
		name:    "cadence",
		applies: always,
		build: func(p types.Profile) contribution {
			if highHours(p) {
				return contribution{tasks: map[slot][]string{
					slotPractice:   {"Start LeetCode practice (5-7 problems per week)"},
					slotInterviews: {"Solve coding problems daily and track weak topics"},
				}}
			}
			return contribution{tasks: map[slot][]string{
				slotPractice:   {"Start LeetCode practice (2-3 problems per week)"},
				slotInterviews: {"Solve coding problems consistently (5-7 per week)"},
			}}
		},
	},

	// Company rules
	{
		name:    "company-research",
		applies: always,
		build: func(p types.Profile) contribution {
			picked := p.Companies()
			if len(picked) == 0 {
				return contribution{tasks: map[slot][]string{slotResearch: {"Explore internships: Google STEP, Microsoft Explore, RBC Amplify"}}}
			}
			if len(picked) > 4 {
				picked = picked[:4]
			}
			return contribution{tasks: map[slot][]string{slotResearch: {"Research internship programs: " + strings.Join(picked, ", ")}}}
		},
	},
}

func init() {
	for _, c := range companies {
		rules = append(rules, companyRule(c))
	}
	rules = append(rules, goalRules...)
	rules = append(rules, rule{
		name:    "closing",
		applies: always,
		build:   static(contribution{resources: closingResources, badges: closingBadges}),
	})
}

func companyRule(c company) rule {
	out := contribution{
		tasks:     map[slot][]string{slotApplications: {c.task}},
		resources: []types.Resource{c.resource},
	}
	if c.badge != nil {
		out.badges = []types.Badge{*c.badge}
	}
	return rule{
		name:    "company-" + c.key,
		applies: func(p types.Profile) bool { return p.HasCompany(c.name) },
		build:   static(out),
	}
}

func goalRule(name, goal string, c contribution) rule {
	return rule{
		name:    name,
		applies: func(p types.Profile) bool { return p.HasGoal(goal) },
		build:   static(c),
	}
}

var goalRules = []rule{
	goalRule("goal-hackathons", "Attend hackathons", contribution{
		tasks: map[slot][]string{
			slotEvents: {"Browse upcoming hackathons on MLH and Devpost"},
			slotExtras: {"Participate in 2-3 hackathons and build network"},
		},
		resources: []types.Resource{
			res("res-hack-1", "Major League Hacking", "https://mlh.io/", "Hackathons", "Find hackathons worldwide"),
			res("res-hack-2", "Devpost", "https://devpost.com/", "Hackathons", "Discover and submit to hackathons"),
		},
		badges: []types.Badge{
			badge("badge-hack-1", "Hackathon Hero", "Participated in your first hackathon", "Zap", 150),
			badge("badge-hack-2", "Hackathon Winner", "Won or placed in a hackathon", "Trophy", 300),
		},
	}),
	goalRule("goal-open-source", "Contribute to open source", contribution{
		tasks: map[slot][]string{slotContribution: {"Make significant open source contributions (5+ PRs)"}},
		resources: []types.Resource{
			res("res-os-1", "Good First Issues", "https://goodfirstissue.dev/", "Open Source", "Beginner-friendly open source projects"),
			res("res-os-2", "First Timers Only", "https://www.firsttimersonly.com/", "Open Source", "Resources for first-time contributors"),
		},
		badges: []types.Badge{
			badge("badge-os-1", "Open Source Contributor", "Made first open source contribution", "GitBranch", 125),
			badge("badge-os-2", "OSS Maintainer", "Maintained an open source project", "Star", 250),
		},
	}),
	goalRule("goal-mentorship", "Get mentorship", contribution{
		tasks: map[slot][]string{slotMentorship: {"Find and connect with industry mentors"}},
		resources: []types.Resource{
			res("res-mentor-1", "ADPList", "https://adplist.org/", "Career", "Free mentorship platform"),
			res("res-mentor-2", "MentorCruise", "https://mentorcruise.com/", "Career", "Professional mentorship marketplace"),
		},
	}),
	goalRule("goal-network", "Network with professionals", contribution{
		tasks: map[slot][]string{
			slotExtras:       {"Connect with 30+ professionals on LinkedIn"},
			slotApplications: {"Attend a career fair or tech meetup before applying"},
		},
		resources: []types.Resource{
			res("res-network-1", "Meetup", "https://www.meetup.com/", "Networking", "Local tech meetups and events"),
		},
	}),
	goalRule("goal-new-tech", "Learn new technologies", contribution{
		tasks: map[slot][]string{slotExtras: {"Explore emerging technologies (AI, blockchain, cloud)"}},
		resources: []types.Resource{
			res("res-tech-1", "roadmap.sh", "https://roadmap.sh/", "CS Learning", "Community learning paths for modern technologies"),
		},
	}),
	goalRule("goal-portfolio", "Build a strong portfolio", contribution{
		tasks: map[slot][]string{slotExtras: {"Write a short case study for each portfolio project"}},
		badges: []types.Badge{
			badge("badge-portfolio-1", "Portfolio Pro", "Published three polished portfolio projects", "Briefcase", 150),
		},
	}),
	goalRule("goal-coding", "Improve coding skills", contribution{
		tasks: map[slot][]string{slotExtras: {"Work through one themed problem set each week (arrays, trees, graphs)"}},
		resources: []types.Resource{
			res("res-coding-1", "NeetCode", "https://neetcode.io/", "Coding Practice", "Structured problem lists with video explanations"),
		},
	}),
	goalRule("goal-interviews", "Gain interview experience", contribution{
		tasks: map[slot][]string{slotInterviews: {"Schedule 5 mock interviews with peers or mentors"}},
		resources: []types.Resource{
			res("res-interview-1", "interviewing.io", "https://interviewing.io/", "Career", "Anonymous mock interviews with engineers"),
		},
	}),
}
